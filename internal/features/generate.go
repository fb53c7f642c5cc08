package features

import (
	"fmt"
	"io"
)

// Generator renders one generated artifact for a feature Set.
type Generator func(w io.Writer, s *Set) error

// Generators lists every artifact this package can produce, keyed by the
// file name a caller would normally write the output to.
var Generators = map[string]Generator{
	"init.sh":    generateInitSh,
	"parse.sh":   generateParseSh,
	"usage.sh":   generateUsageSh,
	"check.sh":   generateCheckSh,
	"define.sh":  generateDefineSh,
	"version.h":  generateVersionH,
	"check.h":    generateCheckH,
	"init.h":     generateInitH,
	"list.h":     generateListH,
	"invalid.h":  generateInvalidH,
	"diagnose.h": generateDiagnoseH,
}

// GeneratorNames returns every artifact name Generators knows, for listing
// on the command line.
func GeneratorNames() []string {
	names := make([]string, 0, len(Generators))
	for name := range Generators {
		names = append(names, name)
	}
	return names
}

func shellHeader(w io.Writer) {
	fmt.Fprintln(w, "# Automatically generated by genfeatures.")
}

func cHeader(w io.Writer) {
	fmt.Fprintln(w, "// Automatically generated by genfeatures.")
}

func generateInitSh(w io.Writer, s *Set) error {
	shellHeader(w)
	fmt.Fprintln(w, "\n# Initialize all features to be enabled by default.\n")
	for _, f := range s.Features {
		fmt.Fprintf(w, "%s=yes\n", f.Name)
	}
	return nil
}

func generateParseSh(w io.Writer, s *Set) error {
	shellHeader(w)
	fmt.Fprintln(w, "\n# Match options which disable features.\n")
	fmt.Fprint(w, "parse () {\n  res=0\n  case x\"$1\" in\n")
	for _, f := range s.Features {
		fmt.Fprintf(w, "    x\"%s\") %s=no;;\n", f.Option, f.Name)
	}
	fmt.Fprint(w, "    *) res=1;;\n  esac\n  return $res\n}\n")
	return nil
}

func generateUsageSh(w io.Writer, s *Set) error {
	shellHeader(w)
	fmt.Fprintln(w, "\n# Print option usage to disable features.\n")
	fmt.Fprintln(w, "cat<<EOF")
	width := 0
	for _, f := range s.Features {
		if len(f.Option) > width {
			width = len(f.Option)
		}
	}
	for _, f := range s.Features {
		fmt.Fprintf(w, "%-*s %s\n", width, f.Option, f.Usage)
	}
	fmt.Fprintln(w, "EOF")
	return nil
}

func generateCheckSh(w io.Writer, s *Set) error {
	shellHeader(w)
	fmt.Fprintln(w, "\n# Check implied disabled features are not disabled.\n")
	for i := range s.Features {
		for j := range s.Features {
			if s.TransitivelyImplied[i][j] {
				fmt.Fprintf(w, "[ $%s = no -a $%s = no ] && die \"'%s' implies '%s'\"\n",
					s.Features[i].Name, s.Features[j].Name, s.Features[i].Option, s.Features[j].Option)
			}
		}
	}
	fmt.Fprintln(w, "\n# Check clashing disabled features.\n")
	for _, c := range s.Clashing {
		i, j := c[0], c[1]
		fmt.Fprintf(w, "[ $%s = no -a $%s = no ] && die \"can not combine '%s' and '%s'\"\n",
			s.Features[i].Name, s.Features[j].Name, s.Features[i].Option, s.Features[j].Option)
	}
	return nil
}

func generateDefineSh(w io.Writer, s *Set) error {
	shellHeader(w)
	fmt.Fprintln(w, "\n# Compiler definitions to disable features.\n")
	for _, f := range s.Features {
		fmt.Fprintf(w, "[ $%s = no ] && CFLAGS=\"$CFLAGS -D%s\"\n", f.Name, f.Define)
	}
	return nil
}

func generateVersionH(w io.Writer, s *Set) error {
	cHeader(w)
	fmt.Fprintln(w, "\n// Version extension string for disabled features.\n")
	for _, f := range s.Features {
		fmt.Fprintf(w, "#ifdef %s\n\"-%s\"\n#endif\n", f.Define, f.Name)
	}
	return nil
}

func generateCheckH(w io.Writer, s *Set) error {
	cHeader(w)
	fmt.Fprintln(w, "\n// Check implied disabled features are not disabled.\n")
	for i := range s.Features {
		for j := range s.Features {
			if s.TransitivelyImplied[i][j] {
				fmt.Fprintf(w, "#if defined(%s) && defined(%s)\n"+
					"#error \"'%s' implies '%s' (the latter should not be defined)\"\n#endif\n",
					s.Features[i].Define, s.Features[j].Define, s.Features[i].Define, s.Features[j].Define)
			}
		}
	}
	fmt.Fprintln(w, "\n// Check clashing disabled features.\n")
	for _, c := range s.Clashing {
		i, j := c[0], c[1]
		fmt.Fprintf(w, "#if defined(%s) && defined(%s)\n"+
			"#error \"'%s' and '%s' can not be combined\"\n#endif\n",
			s.Features[i].Define, s.Features[j].Define, s.Features[i].Define, s.Features[j].Define)
	}
	return nil
}

func generateInitH(w io.Writer, s *Set) error {
	cHeader(w)
	fmt.Fprintln(w, "\n// Force implied disabled features to be disabled.\n")
	for i := range s.Features {
		for j := range s.Features {
			if s.TransitivelyImplied[i][j] {
				fmt.Fprintf(w, "#if defined(%s) && !defined(%s)\n#define %s\n#endif\n",
					s.Features[i].Define, s.Features[j].Define, s.Features[j].Define)
			}
		}
	}
	return nil
}

func generateListH(w io.Writer, s *Set) error {
	cHeader(w)
	fmt.Fprintln(w, "\n// List of features.\n")
	for _, f := range s.Features {
		fmt.Fprintf(w, "%q,\n", f.Option)
	}
	return nil
}

func generateInvalidH(w io.Writer, s *Set) error {
	cHeader(w)
	fmt.Fprintln(w, "\n// Pairs of invalid features.\n")
	for _, pair := range s.InvalidPairs() {
		fmt.Fprintf(w, "%q, %q,\n", s.Features[pair[0]].Option, s.Features[pair[1]].Option)
	}
	return nil
}

func generateDiagnoseH(w io.Writer, s *Set) error {
	cHeader(w)
	fmt.Fprintln(w, "\n// Print compile time diagnostics on disabled features.\n")
	for _, f := range s.Features {
		fmt.Fprintf(w, "#ifdef %s\n#pragma message \"#define %s\"\n#endif\n", f.Define, f.Define)
	}
	return nil
}
