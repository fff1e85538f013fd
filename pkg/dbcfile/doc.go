// Package dbcfile reads and writes the Vector DBC text format.
//
// The reader tokenizes the whole input, then walks the statements in file
// order and populates a document through [dbc.Builder]. Statements that carry
// no information for the model (NS_, BS_ and any keyword the reader does not
// know) are skipped and logged at debug level.
//
// A syntax error aborts the read: the partial document is destroyed and only
// the error is returned. References to undeclared messages, signals, nodes or
// attribute definitions are logged as warnings and ignored unless
// [Options.Strict] is set.
//
// # Example
//
//	doc, err := dbcfile.ReadFile("powertrain.dbc", dbcfile.Options{Logger: logger})
//	if err != nil {
//	    return err
//	}
//	defer dbc.Destroy(doc)
//
// [Write] renders a document back to DBC text in canonical section order.
package dbcfile
