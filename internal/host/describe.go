package host

import (
	"context"
	"fmt"
	"sort"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/vovakirdan/wasmcade/internal/core"
)

// FuncSig describes one imported or exported function.
type FuncSig struct {
	Module  string // Import namespace; empty for exports
	Name    string
	Params  []string
	Results []string
}

// String renders the signature as "module.name(i32, i32) -> i32".
func (f FuncSig) String() string {
	s := f.Name
	if f.Module != "" {
		s = f.Module + "." + s
	}
	s += "("
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += p
	}
	s += ")"
	if len(f.Results) > 0 {
		s += " -> "
		for i, r := range f.Results {
			if i > 0 {
				s += ", "
			}
			s += r
		}
	}
	return s
}

// ABIReport summarises how a module lines up with the host ABI.
type ABIReport struct {
	Imports       []FuncSig
	Exports       []FuncSig
	HasMemory     bool
	TextMode      core.TextMode
	InitTakesSize bool
	Missing       []string // Required exports the module lacks
}

// Describe compiles binary without instantiating it and reports its ABI.
func Describe(ctx context.Context, binary []byte) (ABIReport, error) {
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	compiled, err := rt.CompileModule(ctx, binary)
	if err != nil {
		return ABIReport{}, fmt.Errorf("host: %w: compile module: %w", core.ErrAssetLoad, err)
	}

	var report ABIReport
	for _, def := range compiled.ImportedFunctions() {
		module, name, _ := def.Import()
		report.Imports = append(report.Imports, signature(module, name, def))
	}

	exported := compiled.ExportedFunctions()
	for name, def := range exported {
		report.Exports = append(report.Exports, signature("", name, def))
	}
	sort.Slice(report.Exports, func(i, j int) bool {
		return report.Exports[i].Name < report.Exports[j].Name
	})

	_, report.HasMemory = compiled.ExportedMemories()[ExportMemory]

	for _, name := range []string{ExportInit, ExportResize, ExportRender, ExportUpdate} {
		if _, ok := exported[name]; !ok {
			report.Missing = append(report.Missing, name)
		}
	}
	if def, ok := exported[ExportInit]; ok {
		report.InitTakesSize = len(def.ParamTypes()) == 2
	}

	report.TextMode, err = ResolveTextMode(core.TextAuto, compiled.ImportedFunctions())
	if err != nil {
		return report, err
	}
	return report, nil
}

func signature(module, name string, def api.FunctionDefinition) FuncSig {
	sig := FuncSig{Module: module, Name: name}
	for _, t := range def.ParamTypes() {
		sig.Params = append(sig.Params, api.ValueTypeName(t))
	}
	for _, t := range def.ResultTypes() {
		sig.Results = append(sig.Results, api.ValueTypeName(t))
	}
	return sig
}
