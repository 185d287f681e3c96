package csvio

import (
	"reflect"
	"testing"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "plain fields",
			line: "a,b,c",
			want: []string{"a", "b", "c"},
		},
		{
			name: "empty line",
			line: "",
			want: []string{""},
		},
		{
			name: "single field",
			line: "hello",
			want: []string{"hello"},
		},
		{
			name: "quoted comma",
			line: `"a,b",c`,
			want: []string{"a,b", "c"},
		},
		{
			name: "doubled quote inside field",
			line: `"a""b"`,
			want: []string{`a"b`},
		},
		{
			name: "backslash escaped quote",
			line: `"a\"b",c`,
			want: []string{`a"b`, "c"},
		},
		{
			name: "trailing comma yields empty field",
			line: "a,b,",
			want: []string{"a", "b", ""},
		},
		{
			name: "empty fields between commas",
			line: "a,,c",
			want: []string{"a", "", "c"},
		},
		{
			name: "unterminated quote takes rest of line",
			line: `"abc,def`,
			want: []string{"abc,def"},
		},
		{
			name: "stray quote kept literally",
			line: `"a"b",c`,
			want: []string{`a"b`, "c"},
		},
		{
			name: "quoted field with doubled quotes and comma",
			line: `"Dinner, with ""friends""",19.00`,
			want: []string{`Dinner, with "friends"`, "19.00"},
		},
		{
			name: "quoted empty field",
			line: `"",b`,
			want: []string{"", "b"},
		},
		{
			name: "quoted trailing comma",
			line: `"a",`,
			want: []string{"a", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLine(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLine(%q) = %#v, want %#v", tt.line, got, tt.want)
			}
		})
	}
}

func TestLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "crlf normalized",
			text: "a,b\r\nc,d\r\n",
			want: []string{"a,b", "c,d"},
		},
		{
			name: "surrounding whitespace trimmed",
			text: "\n  a,b\nc,d  \n",
			want: []string{"a,b", "c,d"},
		},
		{
			name: "empty input",
			text: "   \n  ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lines(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lines(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}
}

func TestHeader(t *testing.T) {
	got := Header([]string{" Date ", "DESCRIPTION", "Amount"})
	want := []string{"date", "description", "amount"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Header() = %#v, want %#v", got, want)
	}
}

func TestRow(t *testing.T) {
	header := []string{"date", "amount", "category"}

	t.Run("short row reads missing columns as empty", func(t *testing.T) {
		row := Row(header, []string{"2024-01-15", "12.50"})
		if row["date"] != "2024-01-15" || row["amount"] != "12.50" {
			t.Errorf("unexpected row: %#v", row)
		}
		if row["category"] != "" {
			t.Errorf("missing column = %q, want empty", row["category"])
		}
	})

	t.Run("extra fields dropped and values trimmed", func(t *testing.T) {
		row := Row(header, []string{" 2024-01-15 ", "12.50", "food", "extra"})
		if len(row) != 3 {
			t.Errorf("len(row) = %d, want 3", len(row))
		}
		if row["date"] != "2024-01-15" {
			t.Errorf("date = %q, want trimmed value", row["date"])
		}
	})
}
