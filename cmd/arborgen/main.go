// Command arborgen generates procedural tree meshes and writes them as
// Wavefront OBJ files. Trees come from a built-in preset, a YAML parameter
// file, a built-in L-system grammar, or a Lisp script declaring a whole
// batch.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/arbor/pkg/engine"
	"github.com/chazu/arbor/pkg/lsystem"
	"github.com/chazu/arbor/pkg/mesh"
	"github.com/chazu/arbor/pkg/params"
	"github.com/chazu/arbor/pkg/treegen"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("arborgen: ")
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		presetName   = flag.String("preset", "", "built-in parameter preset name")
		listPresets  = flag.Bool("list-presets", false, "list built-in presets and exit")
		paramsFile   = flag.String("params", "", "YAML parameter file")
		grammarName  = flag.String("lsystem", "", "built-in L-system grammar name")
		listGrammars = flag.Bool("list-lsystems", false, "list built-in L-system grammars and exit")
		iterations   = flag.Int("iterations", 0, "L-system expansion depth (0 uses the grammar default)")
		scriptFile   = flag.String("script", "", "Lisp script declaring trees to generate")
		seed         = flag.Int64("seed", 0, "random seed")
		leaves       = flag.Int("leaves", -1, "override leaf count (-1 keeps the parameter value)")
		blossoms     = flag.Bool("blossoms", false, "toggle blossom placement (overrides the parameter value)")
		outPath      = flag.String("out", "tree.obj", "output OBJ path")
	)
	flag.Parse()

	// An unset -blossoms keeps the parameter value; only an explicit flag
	// overrides it in either direction.
	blossomsSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "blossoms" {
			blossomsSet = true
		}
	})

	if *listPresets {
		for _, name := range params.Presets() {
			fmt.Println(name)
		}
		return nil
	}
	if *listGrammars {
		for _, name := range lsystem.Grammars() {
			fmt.Println(name)
		}
		return nil
	}

	if *scriptFile != "" {
		return runScript(*scriptFile, *outPath)
	}

	req, err := buildRequest(*presetName, *paramsFile, *grammarName, *iterations, *seed, *leaves)
	if err != nil {
		return err
	}
	if blossomsSet {
		req.Params.Blossom.Enabled = *blossoms
	}
	return generateOne(req, *outPath)
}

// buildRequest assembles a single request from the flag surface.
func buildRequest(presetName, paramsFile, grammarName string, iterations int, seed int64, leaves int) (treegen.Request, error) {
	req := treegen.Request{Params: params.Defaults(), Seed: seed}

	switch {
	case paramsFile != "":
		set, err := params.LoadFile(paramsFile)
		if err != nil {
			return req, err
		}
		req.Params = set
	case presetName != "":
		set, err := params.Preset(presetName)
		if err != nil {
			return req, err
		}
		req.Params = set
	}

	if grammarName != "" {
		g, err := lsystem.ByName(grammarName)
		if err != nil {
			return req, err
		}
		req.Mode = treegen.ModeGrammar
		req.Grammar = &g
		req.Iterations = iterations
	}

	if leaves >= 0 {
		req.Params.Leaf.Count = leaves
	}
	return req, nil
}

// runScript evaluates a Lisp script and generates every tree it declares.
// With multiple trees, each output file gets the tree's name (or index)
// as a suffix.
func runScript(path, outPath string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}

	eng := engine.NewEngine()
	requests, evalErrs, err := eng.Evaluate(string(source))
	if err != nil {
		return fmt.Errorf("evaluating %s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			log.Printf("%s: %s", path, e.Error())
		}
		return fmt.Errorf("%d script errors", len(evalErrs))
	}
	if len(requests) == 0 {
		return fmt.Errorf("script %s declares no trees", path)
	}

	for i, req := range requests {
		target := outPath
		if len(requests) > 1 {
			target = suffixPath(outPath, req.Name, i)
		}
		if err := generateOne(*req, target); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}

// suffixPath derives a per-tree output path: base_name.obj or base_3.obj.
func suffixPath(path, name string, index int) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	if name == "" {
		return fmt.Sprintf("%s_%d%s", base, index, ext)
	}
	return fmt.Sprintf("%s_%s%s", base, name, ext)
}

func generateOne(req treegen.Request, outPath string) error {
	res, err := treegen.Generate(req)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		log.Printf("warning: %s", w)
	}
	if res.SimplifierErr != nil {
		log.Printf("simplifier failed, keeping full mesh: %v", res.SimplifierErr)
	}
	if err := mesh.WriteOBJFile(outPath, res.Mesh); err != nil {
		return err
	}
	log.Printf("wrote %s (%d vertices, %d faces)", outPath, len(res.Mesh.Vertices), len(res.Mesh.Faces))
	return nil
}
