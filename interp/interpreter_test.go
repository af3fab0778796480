package interp_test

import (
	"strings"
	"testing"

	"github.com/halprin/glox/internal/loxerr"
	"github.com/halprin/glox/interp"
	"github.com/halprin/glox/parser"
	"github.com/halprin/glox/resolver"
	"github.com/halprin/glox/scanner"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()
	var errs loxerr.Errors
	tokens := scanner.New(src, &errs).ScanTokens()
	stmts := parser.New(tokens, &errs).Parse()
	depths := resolver.New(&errs).Resolve(stmts)
	if errs.HasErrors() {
		t.Fatalf("unexpected static errors: %v", errs.Err())
	}
	var out strings.Builder
	err := interp.New(depths, &out).Interpret(stmts)
	return out.String(), err
}

func TestInterpretScenarios(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "arithmetic",
			src:  `print 1 + 2;`,
			want: "3\n",
		},
		{
			name: "string concatenation",
			src:  `var a = "foo"; var b = "bar"; print a + b;`,
			want: "foobar\n",
		},
		{
			name: "block shadowing",
			src:  `var a = 1; { var a = 2; print a; } print a;`,
			want: "2\n1\n",
		},
		{
			name: "closures",
			src: `
fun makeCounter() {
  var i = 0;
  fun count() {
    i = i + 1;
    print i;
  }
  return count;
}
var c = makeCounter();
c();
c();
`,
			want: "1\n2\n",
		},
		{
			name: "classes and inheritance",
			src: `
class A {
  hello() { print "A"; }
}
class B < A {
  hello() {
    super.hello();
    print "B";
  }
}
B().hello();
`,
			want: "A\nB\n",
		},
		{
			name: "initializer semantics",
			src:  `class P { init(x) { this.x = x; } } print P(5).x;`,
			want: "5\n",
		},
		{
			name: "break and continue",
			src: `
for (var i = 0; i < 5; i = i + 1) {
  if (i == 1) continue;
  if (i == 3) break;
  print i;
}
`,
			want: "0\n2\n",
		},
		{
			name: "modulo",
			src:  `print 7 % 3;`,
			want: "1\n",
		},
		{
			name: "ternary",
			src:  `print 1 < 2 ? "yes" : "no";`,
			want: "yes\n",
		},
		{
			name: "division and modulo by zero do not error",
			src:  `print 1 / 0; print 0 / 0; print 1 % 0;`,
			want: "+Inf\nNaN\nNaN\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.src)
			if err != nil {
				t.Fatalf("unexpected runtime error: %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInterpretUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := run(t, `print a;`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	want := "Undefined variable 'a'.\n[line 1]"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestInterpretClosureCapturesVariableNotValue(t *testing.T) {
	got, err := run(t, `
var a = "before";
fun showA() { print a; }
var shown = showA;
a = "after";
showA();
`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if got != "after\n" {
		t.Errorf("output = %q, want %q", got, "after\n")
	}
}

func TestInterpretMultipleInstancesHaveDistinctFields(t *testing.T) {
	got, err := run(t, `
class Counter { init() { this.n = 0; } inc() { this.n = this.n + 1; } }
var a = Counter();
var b = Counter();
a.inc();
a.inc();
b.inc();
print a.n;
print b.n;
`)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if got != "2\n1\n" {
		t.Errorf("output = %q, want %q", got, "2\n1\n")
	}
}
