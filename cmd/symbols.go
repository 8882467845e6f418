package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/achilleasa/mdlanim/mdl"
	"github.com/achilleasa/mdlanim/symtab"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List the symbols declared by a script.
func Symbols(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return exitError(err)
	}
	defer setupLogging(ctx, cfg).Close()

	if ctx.NArg() != 1 {
		return exitError(errors.New("missing script file argument"))
	}

	prog, err := mdl.ParseFile(ctx.Args().First())
	if err != nil {
		return exitError(err)
	}

	logger.Noticef("symbol table\n%s", symbolTable(prog.Symbols))
	return nil
}

func symbolTable(symbols *symtab.Table) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Name", "Kind", "Value"})

	for _, kind := range []symtab.Kind{symtab.KindMaterial, symtab.KindLight, symtab.KindKnob, symtab.KindCoordSystem} {
		for _, name := range symbols.Names(kind) {
			sym, _ := symbols.Lookup(name)
			table.Append([]string{name, kind.String(), symbolValue(sym)})
		}
	}

	table.Render()
	return buf.String()
}

func symbolValue(sym symtab.Symbol) string {
	switch sym.Kind {
	case symtab.KindMaterial:
		return fmt.Sprintf("Ka %v Kd %v Ks %v", sym.Material.Ambient(), sym.Material.Diffuse(), sym.Material.Specular())
	case symtab.KindLight:
		return fmt.Sprintf("location %v color %v", sym.Light.Location, sym.Light.Color)
	case symtab.KindKnob:
		return fmt.Sprintf("%g", sym.Knob)
	default:
		return fmt.Sprintf("%v", sym.CoordSystem)
	}
}
