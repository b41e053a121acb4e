package diagfmt

// PrettyOpts configures human-readable output.
type PrettyOpts struct {
	Color     bool
	Name      string // источник, например "exprs.txt:3" или "<args>"
	Precision int    // digits after the point, -1 = shortest
	NoCaret   bool   // без строки ввода и подчёркивания
}

// JSONOpts configures JSON output.
type JSONOpts struct {
	Precision     int  // digits after the point for "text", -1 = shortest
	IncludeTokens bool // добавить токены и постфиксную запись
	Indent        bool
}
