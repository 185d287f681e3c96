// Package csvio tokenizes the CSV dialects accepted by the import paths.
//
// The splitter is deliberately hand-rolled: bank exports in the wild carry
// doubled quotes, backslash-escaped quotes and plain broken quoting, and
// the contract is that tokenization never fails — malformed input degrades
// to best-effort fields instead of an error.
package csvio

import "strings"

// SplitLine splits one CSV line into its fields.
//
// Quoting rules: a field may be wrapped in double quotes, in which case
// embedded commas are literal; `""` and `\"` both decode to a literal
// quote; a quote not followed by a comma or end of line is kept as a
// literal character. A trailing comma yields a trailing empty field.
// The scan index advances every iteration, so any input terminates.
func SplitLine(line string) []string {
	var fields []string
	i, n := 0, len(line)
	for i <= n {
		if i == n {
			// Either an empty line or a just-consumed trailing comma.
			fields = append(fields, "")
			break
		}
		var sawComma bool
		if line[i] == '"' {
			i++ // opening quote
			var buf strings.Builder
			for i < n {
				c := line[i]
				switch {
				case c == '"' && i+1 < n && line[i+1] == '"':
					// Doubled quote. If it sits right before the delimiter
					// or end of line, it is a literal quote closing the
					// field; otherwise a literal quote inside it.
					buf.WriteByte('"')
					i += 2
					if i == n || line[i] == ',' {
						goto closed
					}
				case c == '"':
					if i+1 == n || line[i+1] == ',' {
						i++ // closing quote
						goto closed
					}
					// Lenient: stray quote inside the field.
					buf.WriteByte('"')
					i++
				case c == '\\' && i+1 < n && line[i+1] == '"':
					buf.WriteByte('"')
					i += 2
				default:
					buf.WriteByte(c)
					i++
				}
			}
		closed:
			if i < n && line[i] == ',' {
				i++
				sawComma = true
			}
			fields = append(fields, buf.String())
		} else {
			start := i
			for i < n && line[i] != ',' {
				i++
			}
			fields = append(fields, line[start:i])
			if i < n && line[i] == ',' {
				i++
				sawComma = true
			}
		}
		if !sawComma {
			break
		}
	}
	return fields
}

// Lines splits raw CSV text into lines, tolerating CRLF endings. Leading
// and trailing whitespace around the whole blob is dropped.
func Lines(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(trimmed, "\r\n", "\n"), "\n")
}

// Header normalizes a header row: each field trimmed and lowercased.
func Header(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.ToLower(strings.TrimSpace(f))
	}
	return out
}

// Row zips a header with one line's fields into a column lookup. Missing
// columns read as empty strings; extra columns are dropped. Values are
// trimmed.
func Row(header, fields []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, h := range header {
		var v string
		if i < len(fields) {
			v = strings.TrimSpace(fields[i])
		}
		row[h] = v
	}
	return row
}
