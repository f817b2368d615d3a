// Package adapter is the temporal seam of an axis layout engine.
//
// [Adapter] translates the engine's generic date operations (parse, format, add, diff, startOf, endOf) into calls on
// an [atom.Calendar]. Instants are plain epoch milliseconds, units are a closed enum, see [Unit].
//
// Operations never return errors, failures are reported as sentinel results and to the optional
// [FallbackListener], e.g.,
//
//	a := adapter.New(adapter.WithFormats(map[string]string{"day": "D MMM"}))
//	t, ok := a.Parse(adapter.Text("2024-03-15T10:30:00"), opt.Nil[string]())
//	a.Format(a.StartOf(t, adapter.UnitMonth), "YYYY-MM-DD") // "2024-03-01"
//
// Use [Initialize] to install the adapter as the backend of a host, e.g., axis.Context.
package adapter
