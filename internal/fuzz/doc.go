// Package fuzztests houses Go fuzz harnesses that exercise the whole
// evaluation pipeline (lexer -> parens -> postfix -> vm). Its goal is to
// smoke test robustness and guard against panics or hangs on arbitrary
// inputs.
//
// Назначение: прогонять произвольные строки через все стадии и проверять
// инварианты из internal/testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/lexer, internal/parser, internal/vm, internal/driver,
// internal/testkit.

package fuzztests
