// Package fuzztests houses Go fuzz harnesses for the formatting pipeline
// (decode -> rewrite -> indent -> encode). They smoke test robustness: no
// panics and no silent content changes in indent-only mode.
//
// Назначение: прогонять произвольные байты через driver.FormatBytes для
// каждого языка.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
