// seed_categories genera un script SQL idempotente para poblar el catálogo de categorías
// a partir de un CSV con columnas name,parent,enabled,image.
//
// Uso: go run ./cmd/seed_categories [-latin1] [-out archivo.sql] [ruta/categorias.csv]
// La salida lleva la anotación de goose y puede copiarse a internal/infrastructure/postgres/migrations.
// Por defecto lee categorias.csv y escribe en stdout.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Espacio de nombres fijo: el mismo nombre produce siempre el mismo id.
var categoryNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("bluevelvet:category"))

type seedRow struct {
	Name    string
	Parent  string
	Enabled bool
	Image   string
}

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV está codificado en ISO-8859-1")
	outPath := flag.String("out", "", "archivo de salida (stdout si vacío)")
	flag.Parse()

	csvPath := "categorias.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := readRows(f, *latin1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	rows, err = orderByParent(rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Jerarquía: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		file, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
	}
	if err := writeSQL(out, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generadas %d categorías desde %s\n", len(rows), csvPath)
}

// readRows parsea el CSV. La primera fila se omite si es el encabezado.
func readRows(r io.Reader, latin1 bool) ([]seedRow, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		rows []seedRow
		seen = make(map[string]bool)
	)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == 1 && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "name") {
			continue
		}
		row, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if seen[row.Name] {
			return nil, fmt.Errorf("línea %d: nombre duplicado %q", line, row.Name)
		}
		seen[row.Name] = true
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRecord(rec []string) (seedRow, error) {
	field := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	row := seedRow{Name: field(0), Parent: field(1), Enabled: true, Image: field(3)}
	if row.Name == "" {
		return row, errors.New("nombre vacío")
	}
	if row.Parent == row.Name {
		return row, fmt.Errorf("%q no puede ser su propio padre", row.Name)
	}
	if v := field(2); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return row, fmt.Errorf("enabled inválido %q", v)
		}
		row.Enabled = b
	}
	return row, nil
}

// orderByParent reordena para que cada padre del archivo preceda a sus hijos.
// Padres ausentes del archivo se resuelven contra la base al aplicar el script.
func orderByParent(rows []seedRow) ([]seedRow, error) {
	byName := make(map[string]seedRow, len(rows))
	for _, r := range rows {
		byName[r.Name] = r
	}
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int, len(rows))
	out := make([]seedRow, 0, len(rows))

	var visit func(r seedRow) error
	visit = func(r seedRow) error {
		switch state[r.Name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("ciclo en la jerarquía en %q", r.Name)
		}
		state[r.Name] = visiting
		if p, ok := byName[r.Parent]; ok {
			if err := visit(p); err != nil {
				return err
			}
		}
		state[r.Name] = done
		out = append(out, r)
		return nil
	}
	for _, r := range rows {
		if err := visit(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func writeSQL(w io.Writer, rows []seedRow) error {
	var b strings.Builder
	b.WriteString("-- +goose Up\n")
	b.WriteString("-- Catálogo inicial de categorías Blue Velvet\n")
	b.WriteString("-- Generado por cmd/seed_categories; puede aplicarse varias veces.\n\n")
	for _, r := range rows {
		parent := "NULL"
		if r.Parent != "" {
			parent = fmt.Sprintf("(SELECT id FROM category WHERE name = %s)", quote(r.Parent))
		}
		image := "NULL"
		if r.Image != "" {
			image = quote(r.Image)
		}
		fmt.Fprintf(&b, "INSERT INTO category (id, name, image, enabled, parent_id)\n")
		fmt.Fprintf(&b, "VALUES ('%s', %s, %s, %t, %s)\n",
			categoryID(r.Name), quote(r.Name), image, r.Enabled, parent)
		b.WriteString("ON CONFLICT (name) DO NOTHING;\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func categoryID(name string) uuid.UUID {
	return uuid.NewSHA1(categoryNamespace, []byte(name))
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
