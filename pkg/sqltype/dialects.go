package sqltype

import (
	"fmt"

	"github.com/schemalens/schemalens/pkg/apperrors"
	"github.com/schemalens/schemalens/pkg/models"
)

// Dialect names accepted by ForDialect.
const (
	DialectPostgres  = "postgres"
	DialectSQLServer = "sqlserver"
	DialectMySQL     = "mysql"
	DialectOracle    = "oracle"
	DialectGeneric   = "generic"
)

// ForDialect returns a classifier preloaded with the builtin category table
// for the named dialect. "generic" merges all builtin tables.
func ForDialect(name string) (*Classifier, error) {
	switch name {
	case DialectPostgres:
		return NewClassifier(postgresTypes), nil
	case DialectSQLServer:
		return NewClassifier(sqlserverTypes), nil
	case DialectMySQL:
		return NewClassifier(mysqlTypes), nil
	case DialectOracle:
		return NewClassifier(oracleTypes), nil
	case DialectGeneric, "":
		c := NewClassifier(postgresTypes)
		c.Extend(mysqlTypes)
		c.Extend(oracleTypes)
		c.Extend(sqlserverTypes)
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownDialect, name)
	}
}

var postgresTypes = map[string]models.DataTypeCategory{
	"varchar":                     models.CategoryString,
	"character varying":           models.CategoryString,
	"char":                        models.CategoryString,
	"character":                   models.CategoryString,
	"text":                        models.CategoryString,
	"citext":                      models.CategoryString,
	"name":                        models.CategoryString,
	"smallint":                    models.CategoryNumeric,
	"int2":                        models.CategoryNumeric,
	"integer":                     models.CategoryNumeric,
	"int":                         models.CategoryNumeric,
	"int4":                        models.CategoryNumeric,
	"bigint":                      models.CategoryNumeric,
	"int8":                        models.CategoryNumeric,
	"decimal":                     models.CategoryNumeric,
	"numeric":                     models.CategoryNumeric,
	"real":                        models.CategoryNumeric,
	"float4":                      models.CategoryNumeric,
	"double precision":            models.CategoryNumeric,
	"float8":                      models.CategoryNumeric,
	"money":                       models.CategoryNumeric,
	"serial":                      models.CategoryNumeric,
	"bigserial":                   models.CategoryNumeric,
	"smallserial":                 models.CategoryNumeric,
	"date":                        models.CategoryTemporal,
	"time":                        models.CategoryTemporal,
	"time without time zone":      models.CategoryTemporal,
	"time with time zone":         models.CategoryTemporal,
	"timetz":                      models.CategoryTemporal,
	"timestamp":                   models.CategoryTemporal,
	"timestamp without time zone": models.CategoryTemporal,
	"timestamp with time zone":    models.CategoryTemporal,
	"timestamptz":                 models.CategoryTemporal,
	"interval":                    models.CategoryTemporal,
	"boolean":                     models.CategoryBoolean,
	"bool":                        models.CategoryBoolean,
	"bytea":                       models.CategoryBinary,
	"json":                        models.CategoryJSON,
	"jsonb":                       models.CategoryJSON,
	"point":                       models.CategorySpatial,
	"line":                        models.CategorySpatial,
	"polygon":                     models.CategorySpatial,
	"geometry":                    models.CategorySpatial,
	"geography":                   models.CategorySpatial,
	"uuid":                        models.CategoryUUID,
}

var sqlserverTypes = map[string]models.DataTypeCategory{
	"varchar":          models.CategoryString,
	"nvarchar":         models.CategoryString,
	"char":             models.CategoryString,
	"nchar":            models.CategoryString,
	"text":             models.CategoryString,
	"ntext":            models.CategoryString,
	"sysname":          models.CategoryString,
	"tinyint":          models.CategoryNumeric,
	"smallint":         models.CategoryNumeric,
	"int":              models.CategoryNumeric,
	"bigint":           models.CategoryNumeric,
	"decimal":          models.CategoryNumeric,
	"numeric":          models.CategoryNumeric,
	"float":            models.CategoryNumeric,
	"real":             models.CategoryNumeric,
	"money":            models.CategoryNumeric,
	"smallmoney":       models.CategoryNumeric,
	"date":             models.CategoryTemporal,
	"time":             models.CategoryTemporal,
	"datetime":         models.CategoryTemporal,
	"datetime2":        models.CategoryTemporal,
	"smalldatetime":    models.CategoryTemporal,
	"datetimeoffset":   models.CategoryTemporal,
	"bit":              models.CategoryBoolean,
	"binary":           models.CategoryBinary,
	"varbinary":        models.CategoryBinary,
	"image":            models.CategoryBinary,
	"rowversion":       models.CategoryBinary,
	"timestamp":        models.CategoryBinary, // SQL Server timestamp is a row version, not temporal
	"json":             models.CategoryJSON,
	"geometry":         models.CategorySpatial,
	"geography":        models.CategorySpatial,
	"uniqueidentifier": models.CategoryUUID,
}

var mysqlTypes = map[string]models.DataTypeCategory{
	"varchar":    models.CategoryString,
	"char":       models.CategoryString,
	"tinytext":   models.CategoryString,
	"text":       models.CategoryString,
	"mediumtext": models.CategoryString,
	"longtext":   models.CategoryString,
	"enum":       models.CategoryString,
	"set":        models.CategoryString,
	"tinyint":    models.CategoryNumeric,
	"smallint":   models.CategoryNumeric,
	"mediumint":  models.CategoryNumeric,
	"int":        models.CategoryNumeric,
	"integer":    models.CategoryNumeric,
	"bigint":     models.CategoryNumeric,
	"decimal":    models.CategoryNumeric,
	"numeric":    models.CategoryNumeric,
	"float":      models.CategoryNumeric,
	"double":     models.CategoryNumeric,
	"date":       models.CategoryTemporal,
	"time":       models.CategoryTemporal,
	"datetime":   models.CategoryTemporal,
	"timestamp":  models.CategoryTemporal,
	"year":       models.CategoryTemporal,
	"boolean":    models.CategoryBoolean,
	"bool":       models.CategoryBoolean,
	"binary":     models.CategoryBinary,
	"varbinary":  models.CategoryBinary,
	"tinyblob":   models.CategoryBinary,
	"blob":       models.CategoryBinary,
	"mediumblob": models.CategoryBinary,
	"longblob":   models.CategoryBinary,
	"json":       models.CategoryJSON,
	"geometry":   models.CategorySpatial,
	"point":      models.CategorySpatial,
	"polygon":    models.CategorySpatial,
}

var oracleTypes = map[string]models.DataTypeCategory{
	"varchar2":      models.CategoryString,
	"nvarchar2":     models.CategoryString,
	"char":          models.CategoryString,
	"nchar":         models.CategoryString,
	"clob":          models.CategoryString,
	"nclob":         models.CategoryString,
	"long":          models.CategoryString,
	"number":        models.CategoryNumeric,
	"float":         models.CategoryNumeric,
	"binary_float":  models.CategoryNumeric,
	"binary_double": models.CategoryNumeric,
	"date":          models.CategoryTemporal,
	"timestamp":     models.CategoryTemporal,
	"blob":          models.CategoryBinary,
	"raw":           models.CategoryBinary,
	"long raw":      models.CategoryBinary,
	"bfile":         models.CategoryBinary,
	"json":          models.CategoryJSON,
	"sdo_geometry":  models.CategorySpatial,
}
