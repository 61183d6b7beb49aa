// seed genera el script SQL que puebla documentos y asuntos a partir de un CSV
// exportado de la hoja de trámites de la UGEL (columnas documento;asunto).
//
// Uso: go run ./cmd/seed [ruta/asuntos.csv]
// Por defecto busca asuntos.csv en el directorio actual. Acepta UTF-8 o ISO-8859-1.
// Escribe: internal/infrastructure/postgres/migrations/003_seed_asuntos.sql
package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type par struct {
	documento string
	asunto    string
}

func main() {
	csvPath := "asuntos.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}

	pares, err := leerPares(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "003_seed_asuntos.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	docs, err := escribirSQL(out, pares)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d documentos, %d asuntos\n", outPath, docs, len(pares))
}

// leerPares decodifica el CSV (Latin-1 si no es UTF-8 válido), salta la cabecera
// y descarta filas vacías y duplicadas.
func leerPares(raw []byte) ([]par, error) {
	var r io.Reader = bytes.NewReader(bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf")))
	if !utf8.Valid(raw) {
		r = transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	vistos := make(map[par]bool)
	var pares []par
	for fila := 1; ; fila++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 2 {
			continue
		}
		p := par{documento: strings.TrimSpace(rec[0]), asunto: strings.TrimSpace(rec[1])}
		if p.documento == "" || p.asunto == "" {
			continue
		}
		if fila == 1 && strings.EqualFold(p.documento, "documento") {
			continue
		}
		if vistos[p] {
			continue
		}
		vistos[p] = true
		pares = append(pares, p)
	}
	sort.SliceStable(pares, func(i, j int) bool {
		if pares[i].documento != pares[j].documento {
			return pares[i].documento < pares[j].documento
		}
		return pares[i].asunto < pares[j].asunto
	})
	return pares, nil
}

// escribirSQL emite inserts idempotentes; devuelve cuántos documentos distintos hay.
func escribirSQL(w io.Writer, pares []par) (int, error) {
	var b strings.Builder
	b.WriteString("-- Documentos y asuntos de trámite\n")
	b.WriteString("-- Generado con cmd/seed\n\n")

	var docs []string
	for i, p := range pares {
		if i == 0 || pares[i-1].documento != p.documento {
			docs = append(docs, p.documento)
		}
	}

	if len(docs) > 0 {
		b.WriteString("-- 1. Documentos\n")
		b.WriteString("INSERT INTO documentos (nombre_documento) VALUES\n")
		for i, d := range docs {
			sep := ","
			if i == len(docs)-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "  ('%s')%s\n", escapeSQL(d), sep)
		}
		b.WriteString("ON CONFLICT (nombre_documento) DO NOTHING;\n\n")
	}

	b.WriteString("-- 2. Asuntos por documento\n")
	for _, p := range pares {
		fmt.Fprintf(&b, "INSERT INTO asuntos (documento_id, nombre_asunto)\n")
		fmt.Fprintf(&b, "SELECT id_documento, '%s' FROM documentos WHERE nombre_documento = '%s'\n",
			escapeSQL(p.asunto), escapeSQL(p.documento))
		b.WriteString("ON CONFLICT (documento_id, nombre_asunto) DO NOTHING;\n")
	}

	_, err := io.WriteString(w, b.String())
	return len(docs), err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
