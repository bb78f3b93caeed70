package table

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	clierrors "github.com/salmonumbrella/tabtex/internal/errors"
)

// DefaultDelimiter separates fields when no delimiter is given.
const DefaultDelimiter = ","

// ErrNoHeader is returned (wrapped in a SourceReadError) for an empty source.
var ErrNoHeader = errors.New("source has no header row")

// LoadOptions controls how LoadFile reads a source.
type LoadOptions struct {
	// Delimiter separates fields in text sources. Empty means ",".
	Delimiter string
	// Sheet selects the worksheet of a spreadsheet source. Empty means the first sheet.
	Sheet string
	// Stdin is read when the path is "-". Nil means os.Stdin.
	Stdin io.Reader
}

// LoadFile loads a table from path, or from stdin when path is "-".
// Files ending in .xlsx or .xlsm are read as spreadsheets.
func LoadFile(path string, opts LoadOptions) (*Table, error) {
	if path == "-" {
		in := opts.Stdin
		if in == nil {
			in = os.Stdin
		}
		t, err := Load(in, opts.Delimiter)
		return t, withPath(err, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &clierrors.SourceReadError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	if IsSpreadsheet(path) {
		t, err := LoadXLSX(f, opts.Sheet)
		return t, withPath(err, path)
	}
	t, err := Load(f, opts.Delimiter)
	return t, withPath(err, path)
}

// IsSpreadsheet reports whether path names a spreadsheet workbook.
func IsSpreadsheet(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	default:
		return false
	}
}

func withPath(err error, path string) error {
	var se *clierrors.SourceReadError
	if errors.As(err, &se) && se.Path == "" {
		se.Path = path
	}
	return err
}

// Load parses delimited text. The first record names the columns; every
// following record must have the same number of fields.
func Load(r io.Reader, delim string) (*Table, error) {
	sep, err := ParseDelimiter(delim)
	if err != nil {
		return nil, err
	}

	var records [][]string
	var lines []int
	if utf8.RuneCountInString(sep) == 1 {
		records, lines, err = readCSV(r, []rune(sep)[0])
	} else {
		records, lines, err = readSplit(r, sep)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &clierrors.SourceReadError{Err: ErrNoHeader}
	}

	return fromRecords(records[0], records[1:], lines[1:], false)
}

// FromRecords builds a table from a header and string rows, inferring each
// column's kind.
func FromRecords(header []string, rows [][]string) (*Table, error) {
	lines := make([]int, len(rows))
	for i := range rows {
		lines[i] = i + 2
	}
	return fromRecords(header, rows, lines, false)
}

// ParseDelimiter resolves the delimiter flag: "" means ",", and both `\t`
// and "tab" mean a TAB character. A delimiter longer than one character is a
// regular expression and must compile.
func ParseDelimiter(delim string) (string, error) {
	switch strings.ToLower(delim) {
	case "":
		return DefaultDelimiter, nil
	case `\t`, "tab":
		return "\t", nil
	}
	if strings.ContainsAny(delim, "\"\r\n") {
		return "", &clierrors.ValidationError{Field: "delimiter", Message: fmt.Sprintf("%q cannot contain quotes or line breaks", delim)}
	}
	if !utf8.ValidString(delim) {
		return "", &clierrors.ValidationError{Field: "delimiter", Message: fmt.Sprintf("%q is not valid UTF-8", delim)}
	}
	if utf8.RuneCountInString(delim) > 1 {
		if _, err := regexp.Compile(delim); err != nil {
			return "", &clierrors.ValidationError{Field: "delimiter", Message: fmt.Sprintf("%q is not a valid pattern: %v", delim, err)}
		}
	}
	return delim, nil
}

func readCSV(r io.Reader, comma rune) ([][]string, []int, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1

	var records [][]string
	var lines []int
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, &clierrors.SourceReadError{Err: err}
		}
		line, _ := cr.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}
	return records, lines, nil
}

// readSplit splits each line on the sep pattern. A whitespace pattern such
// as `\s+` ignores leading and trailing blanks on the line.
func readSplit(r io.Reader, sep string) ([][]string, []int, error) {
	re := regexp.MustCompile(sep)
	trim := re.MatchString(" ") || re.MatchString("\t")

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var records [][]string
	var lines []int
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if trim {
			text = strings.TrimSpace(text)
		}
		if text == "" {
			continue
		}
		records = append(records, re.Split(text, -1))
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, &clierrors.SourceReadError{Err: err}
	}
	return records, lines, nil
}

// fromRecords validates row widths and builds typed columns. With padShort
// set, rows shorter than the header are padded with empty cells; spreadsheet
// readers drop trailing blanks so short rows there are not malformed.
func fromRecords(header []string, rows [][]string, lines []int, padShort bool) (*Table, error) {
	want := len(header)
	for i, row := range rows {
		if len(row) == want || (padShort && len(row) < want) {
			continue
		}
		return nil, &clierrors.MalformedRowError{Line: lines[i], Got: len(row), Want: want}
	}

	names := dedupeNames(header)
	columns := make([]Column, want)
	raw := make([]string, len(rows))
	for j, name := range names {
		for i, row := range rows {
			if j < len(row) {
				raw[i] = row[j]
			} else {
				raw[i] = ""
			}
		}
		columns[j] = inferColumn(name, raw)
	}
	return &Table{Columns: columns}, nil
}

// dedupeNames renames repeated header names to "name.1", "name.2", ... so
// every column stays addressable by name.
func dedupeNames(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	taken := make(map[string]bool, len(header))
	for _, h := range header {
		taken[h] = true
	}
	for i, h := range header {
		n, dup := seen[h]
		seen[h] = n + 1
		if !dup {
			out[i] = h
			continue
		}
		name := fmt.Sprintf("%s.%d", h, n)
		for taken[name] {
			n++
			name = fmt.Sprintf("%s.%d", h, n)
		}
		seen[h] = n + 1
		taken[name] = true
		out[i] = name
	}
	return out
}

// inferColumn types a column: integer when every non-empty cell is an
// integer, float when every non-empty cell is a number, string otherwise.
// Empty cells become nulls in numeric columns.
func inferColumn(name string, raw []string) Column {
	kind := KindNull
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			if kind == KindNull {
				kind = KindInt
			}
			continue
		}
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			kind = KindFloat
			continue
		}
		kind = KindString
		break
	}

	values := make([]Value, len(raw))
	for i, s := range raw {
		trimmed := strings.TrimSpace(s)
		switch {
		case kind == KindString || kind == KindNull:
			if s == "" {
				values[i] = Null()
			} else {
				values[i] = String(s)
			}
		case trimmed == "":
			values[i] = Null()
		case kind == KindInt:
			n, _ := strconv.ParseInt(trimmed, 10, 64)
			values[i] = Int(n)
		default:
			f, _ := strconv.ParseFloat(trimmed, 64)
			values[i] = Float(f)
		}
	}
	if kind == KindNull {
		kind = KindString
	}
	return Column{Name: name, Kind: kind, Values: values}
}
