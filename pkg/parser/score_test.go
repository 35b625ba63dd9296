package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schemalens/schemalens/pkg/models"
)

func TestScore(t *testing.T) {
	maxLen := 50
	tests := []struct {
		name string
		col  models.ParsedColumn
		want float64
	}{
		{
			name: "minimal column",
			col:  models.ParsedColumn{Name: "a", DataType: models.DataType{Category: models.CategoryOther}},
			want: 0.5,
		},
		{
			name: "long name",
			col:  models.ParsedColumn{Name: "total", DataType: models.DataType{Category: models.CategoryOther}},
			want: 0.6,
		},
		{
			name: "long name with underscore and category",
			col:  models.ParsedColumn{Name: "order_total", DataType: models.DataType{Category: models.CategoryNumeric}},
			want: 0.9,
		},
		{
			name: "everything",
			col: models.ParsedColumn{
				Name:     "customer_email",
				DataType: models.DataType{Category: models.CategoryString, MaxLength: &maxLen},
			},
			want: 1.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(&tt.col)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestGenerateTags(t *testing.T) {
	tests := []struct {
		name string
		col  models.ParsedColumn
		want []string
	}{
		{
			name: "category only",
			col:  models.ParsedColumn{Name: "payload", DataType: models.DataType{Category: models.CategoryJSON}},
			want: []string{"json"},
		},
		{
			name: "identifier",
			col:  models.ParsedColumn{Name: "user_id", DataType: models.DataType{Category: models.CategoryNumeric}},
			want: []string{"numeric", "identifier"},
		},
		{
			name: "multiple keywords",
			col:  models.ParsedColumn{Name: "shipping_address_name", DataType: models.DataType{Category: models.CategoryString}},
			want: []string{"string", "name", "address"},
		},
		{
			name: "case insensitive match",
			col:  models.ParsedColumn{Name: "UnitPrice", DataType: models.DataType{Category: models.CategoryNumeric}},
			want: []string{"numeric", "financial"},
		},
		{
			name: "duplicate keywords collapse",
			col:  models.ParsedColumn{Name: "start_date_end_date", DataType: models.DataType{Category: models.CategoryTemporal}},
			want: []string{"temporal"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateTags(&tt.col))
		})
	}
}
