// Package texto normaliza cadenas para búsquedas sin distinguir mayúsculas ni tildes.
package texto

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var plegador = cases.Fold()

// Normalizar quita tildes, pliega mayúsculas y recorta espacios: "Jurídica " -> "juridica".
func Normalizar(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	sinTildes, _, err := transform.String(t, s)
	if err != nil {
		sinTildes = s
	}
	return strings.TrimSpace(plegador.String(sinTildes))
}

// Contiene búsqueda por subcadena insensible a mayúsculas y tildes. Aguja vacía siempre coincide.
func Contiene(pajar, aguja string) bool {
	a := Normalizar(aguja)
	if a == "" {
		return true
	}
	return strings.Contains(Normalizar(pajar), a)
}

// ContieneAlguno true si la aguja aparece en cualquiera de los campos.
func ContieneAlguno(aguja string, campos ...string) bool {
	a := Normalizar(aguja)
	if a == "" {
		return true
	}
	for _, c := range campos {
		if strings.Contains(Normalizar(c), a) {
			return true
		}
	}
	return false
}

var titulo = cases.Title(language.Spanish)

// Titulo "MARIA LOPEZ" -> "Maria Lopez"; se usa al registrar nombres.
func Titulo(s string) string {
	return titulo.String(strings.Join(strings.Fields(s), " "))
}
