package gen

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/exp/slices"

	"github.com/Manu343726/csrgen/pkg/csr"
	"github.com/Manu343726/csrgen/pkg/utils"
)

//go:embed templates
var Templates embed.FS

// Name of the tool in generated file headers
const ToolName = "csrgen"

const DefaultPackage = "csr"

type Options struct {
	XLEN csr.XLEN

	// Registers to generate, all of them if empty
	Registers []string

	// Go package name of the generated code
	Package string

	Logger *slog.Logger
}

// A generated source file
type File struct {
	Name    string
	Content []byte
}

type backendFile struct {
	template string
	name     func(options Options) string
	format   func(source []byte) ([]byte, error)
}

type backend struct {
	name        string
	description string
	xlens       []csr.XLEN

	// Every generated register needs a CSR number
	needsAddress bool

	files []backendFile
}

func fixedName(name string) func(Options) string {
	return func(Options) string {
		return name
	}
}

var backends = map[string]*backend{
	"c": {
		name:        "c",
		description: "C11 header with static inline accessors and immediate macros",
		xlens:       csr.SupportedXLENs,
		files: []backendFile{
			{template: "c.h.tmpl", name: fixedName("riscv-csr.h")},
		},
	},
	"cpp": {
		name:        "cpp",
		description: "C++17 header with register and field classes and constant dispatch",
		xlens:       csr.SupportedXLENs,
		files: []backendFile{
			{template: "cpp.hpp.tmpl", name: fixedName("riscv-csr.hpp")},
		},
	},
	"rust": {
		name:        "rust",
		description: "no_std Rust crate root with macro_rules! accessors",
		xlens:       csr.SupportedXLENs,
		files: []backendFile{
			{template: "rust.rs.tmpl", name: fixedName("riscv_csr_macros.rs")},
		},
	},
	"go": {
		name:         "go",
		description:  "Go package with riscv64 assembly accessors",
		xlens:        []csr.XLEN{csr.XLEN64},
		needsAddress: true,
		files: []backendFile{
			{
				template: "go.go.tmpl",
				name:     func(o Options) string { return o.Package + "_riscv64.go" },
				format:   format.Source,
			},
			{
				template: "go_riscv64.s.tmpl",
				name:     func(o Options) string { return o.Package + "_riscv64.s" },
			},
		},
	},
}

// Names of the available backends, sorted
func Backends() []string {
	return utils.SortedKeys(backends)
}

// One line description of a backend
func BackendDescription(name string) string {
	if b, found := backends[name]; found {
		return b.description
	}

	return ""
}

type Generator struct {
	backend  *backend
	template *template.Template
	options  Options
	logger   *slog.Logger
}

type templateData struct {
	*Plan
	Package string
	Tool    string
}

func commentText(text string) string {
	text = strings.ReplaceAll(text, "*/", "* /")
	return strings.Join(strings.Fields(text), " ")
}

func hex(value uint64) string {
	return fmt.Sprintf("0x%x", value)
}

func cType(p *RegisterPlan) string {
	switch p.Register.Width {
	case csr.Width32:
		return "uint_csr32_t"
	case csr.Width64:
		return "uint_csr64_t"
	}

	return "uint_xlen_t"
}

func rustType(p *RegisterPlan) string {
	switch p.Register.Width {
	case csr.Width32:
		return "UintCsr32"
	case csr.Width64:
		return "UintCsr64"
	}

	return "UintXlen"
}

// Local holding the instruction result. Accessors taking an operand return the
// previous value of the register.
func cResultName(op Operation) string {
	if op.ZeroSource() {
		return "value"
	}

	return "prev_value"
}

// Base class of the C++ register and field classes
func cppAccess(p *RegisterPlan) string {
	switch {
	case p.Register.Access.CanRead() && p.Register.Access.CanWrite():
		return "read_write"
	case p.Register.Access.CanWrite():
		return "write_only"
	}

	return "read_only"
}

// Operand placeholders of inline assembly: the result comes first when there is one
func placeholders(op Operation, format string) (result, source string) {
	if op.DiscardResult() {
		return "", fmt.Sprintf(format, 0)
	}

	return fmt.Sprintf(format, 0), fmt.Sprintf(format, 1)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"ToUpper":     strings.ToUpper,
		"ToLower":     strings.ToLower,
		"CamelCase":   utils.CamelCase,
		"comment":     commentText,
		"hex":         hex,
		"cType":       cType,
		"rustType":    rustType,
		"cResultName": cResultName,
		"cppAccess":   cppAccess,
		"cppOperations": func(p *RegisterPlan) []Operation {
			return append(slices.Clone(p.Operations), p.ReadImmediates...)
		},
		"goType": func(p *RegisterPlan) string {
			return goType(p.ValueBits)
		},
		"uintBits": func(xlen csr.XLEN) int {
			return int(xlen)
		},
		"cAsm": func(op Operation, register string) string {
			result, source := placeholders(op, "%%%d")
			return op.Asm(register, result, source)
		},
		"rustAsm": func(op Operation, register string) string {
			result, source := placeholders(op, "{%d}")
			return op.Asm(register, result, source)
		},
		// Instruction text up to the immediate operand, "csrsi    mip, "
		"immAsmPrefix": func(op Operation, register string) string {
			return op.Asm(register, "", "")
		},
		"operandName": goOperandName,
		"goFuncs":     goFuncs,
	}
}

// Validates a Go package name
func ValidatePackage(name string) error {
	if !token.IsIdentifier(name) || name == "_" {
		return utils.MakeError(ErrInvalidPackage, "'%v'", name)
	}

	return nil
}

// Builds a generator for the given backend ("c", "cpp", "rust" or "go")
func NewGenerator(lang string, options Options) (*Generator, error) {
	b, found := backends[strings.ToLower(lang)]
	if !found {
		return nil, utils.MakeError(ErrUnknownBackend, "'%v', expected one of %v", lang, strings.Join(Backends(), ", "))
	}

	if err := options.XLEN.Validate(); err != nil {
		return nil, err
	}

	if !slices.Contains(b.xlens, options.XLEN) {
		return nil, utils.MakeError(ErrUnsupportedXLEN, "%v backend on %v, supported: %v", b.name, options.XLEN, utils.FormatSlice(b.xlens, ", "))
	}

	if options.Package == "" {
		options.Package = DefaultPackage
	}

	if err := ValidatePackage(options.Package); err != nil {
		return nil, err
	}

	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}

	t, err := template.New(b.name).Funcs(templateFuncs()).ParseFS(Templates, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}

	return &Generator{
		backend:  b,
		template: t,
		options:  options,
		logger:   options.Logger.With("backend", b.name),
	}, nil
}

func (g *Generator) Backend() string {
	return g.backend.name
}

// Number of files the backend emits
func (g *Generator) Files() int {
	return len(g.backend.files)
}

func (g *Generator) checkAddresses(plan *Plan) error {
	if !g.backend.needsAddress {
		return nil
	}

	var errs []error

	for _, r := range plan.Registers {
		if !r.Register.HasAddress {
			errs = append(errs, utils.MakeError(ErrMissingAddress, "%v, required by the %v backend", r.Register.Name, g.backend.name))
		}
	}

	return errors.Join(errs...)
}

// Generates the source files of the backend for a database
func (g *Generator) Generate(db *csr.Database) ([]File, error) {
	plan, err := NewPlan(db, g.options.XLEN, g.options.Registers, g.logger)
	if err != nil {
		return nil, err
	}

	if err := g.checkAddresses(plan); err != nil {
		return nil, err
	}

	data := templateData{
		Plan:    plan,
		Package: g.options.Package,
		Tool:    ToolName,
	}

	files := make([]File, 0, len(g.backend.files))

	for _, bf := range g.backend.files {
		var buffer bytes.Buffer

		if err := g.template.ExecuteTemplate(&buffer, bf.template, data); err != nil {
			return nil, err
		}

		content := buffer.Bytes()

		if bf.format != nil {
			content, err = bf.format(content)
			if err != nil {
				return nil, fmt.Errorf("formatting %v: %w", bf.name(g.options), err)
			}
		}

		name := bf.name(g.options)
		g.logger.Debug("generated file", "file", name, "bytes", len(content))

		files = append(files, File{
			Name:    name,
			Content: content,
		})
	}

	return files, nil
}

// Writes the generated sources to a writer. Backends emitting more than one
// file get a header line before each file.
func (g *Generator) GenerateTo(writer io.Writer, db *csr.Database) error {
	files, err := g.Generate(db)
	if err != nil {
		return err
	}

	for _, f := range files {
		if len(files) > 1 {
			if _, err := fmt.Fprintf(writer, "// ---- %v ----\n", f.Name); err != nil {
				return err
			}
		}

		if _, err := writer.Write(f.Content); err != nil {
			return err
		}
	}

	return nil
}

// Writes the generated sources of a single file backend to path. Nothing is
// written when generation fails.
func (g *Generator) WriteFile(path string, db *csr.Database) error {
	var buffer bytes.Buffer

	if err := g.GenerateTo(&buffer, db); err != nil {
		return err
	}

	if err := os.WriteFile(path, buffer.Bytes(), 0o644); err != nil {
		return err
	}

	g.logger.Info("wrote file", "path", path)
	return nil
}

// Writes the generated sources into a directory, returning the written paths
func (g *Generator) WriteFiles(dir string, db *csr.Database) ([]string, error) {
	files, err := g.Generate(db)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(files))

	for _, f := range files {
		path := filepath.Join(dir, f.Name)

		if err := os.WriteFile(path, f.Content, 0o644); err != nil {
			return nil, err
		}

		g.logger.Info("wrote file", "path", path)
		paths = append(paths, path)
	}

	return paths, nil
}
