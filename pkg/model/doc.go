// Package model defines the form model consumed by renderers. Builders reside
// in internal/model but return the types aliased here.
//
// A FormModel is synthesised from table column metadata (the rows of SHOW
// FULL COLUMNS or an equivalent source). Every column becomes a Descriptor
// whose input kind comes from the base type table, with auto_increment
// columns forced to hidden inputs. enum and set columns carry their choice
// list; datetime and timestamp columns carry the CurrentTimestamp sentinel.
//
// When the model is built with a value source it is marked Populated. Scalar
// values are sanitised for markup on merge, while select, checkbox and radio
// inputs record one Selection per choice. Renderers use Populated to decide
// whether choice inputs reflect those selections or the column default.
package model
