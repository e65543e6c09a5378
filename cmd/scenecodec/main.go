// scenecodec is a CLI utility for converting meshes between glTF scenes and
// the codec mesh container format.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/softgeom/scenecodec/internal/config"
	"github.com/softgeom/scenecodec/internal/logger"
	"github.com/softgeom/scenecodec/pkg/codec"
	"github.com/softgeom/scenecodec/pkg/gltfio"
	"github.com/softgeom/scenecodec/pkg/scene"
	"github.com/softgeom/scenecodec/pkg/translate"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "encode":
		cmdEncode(args)
	case "decode":
		cmdDecode(args)
	case "info":
		cmdInfo(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`scenecodec - scene mesh codec converter

Usage:
  scenecodec <command> [options]

Commands:
  encode <in.gltf|glb> <out.scmesh>  Encode a glTF mesh to a codec mesh
  decode <in.scmesh> <out.gltf>      Decode a codec mesh back to glTF
  info <in.scmesh>                   Show codec mesh information

Options:
  -config path    YAML config file
  -simplify f     Decimate to fraction f of triangles before encoding

Examples:
  scenecodec encode model.gltf model.scmesh
  scenecodec encode -simplify 0.5 model.gltf model.scmesh
  scenecodec decode model.scmesh restored.gltf
  scenecodec info model.scmesh`)
}

// setup loads configuration and initializes logging.
func setup(configPath string) *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	zap.ReplaceGlobals(logger.Log)
	return cfg
}

func cmdEncode(args []string) {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML config file")
	simplifyRatio := fs.Float64("simplify", -1, "Decimate to fraction of triangles (overrides config)")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: scenecodec encode [options] <in.gltf|glb> <out.scmesh>")
		os.Exit(1)
	}

	cfg := setup(*configPath)
	defer logger.Sync()

	ratio := cfg.Encode.SimplifyRatio
	if *simplifyRatio >= 0 {
		ratio = *simplifyRatio
	}

	mesh, err := gltfio.Load(fs.Arg(0))
	if err != nil {
		logger.Log.Fatal("loading glTF", zap.String("path", fs.Arg(0)), zap.Error(err))
	}
	logger.Log.Info("loaded mesh",
		zap.String("name", mesh.Name),
		zap.Int("points", mesh.NumPoints()),
		zap.Int("faces", mesh.NumFaces()))

	if ratio > 0 && ratio < 1 {
		simplified, err := scene.Decimate(mesh, ratio)
		if err != nil {
			logger.Log.Fatal("decimating mesh", zap.Error(err))
		}
		logger.Log.Info("decimated mesh",
			zap.Float64("ratio", ratio),
			zap.Int("faces", simplified.NumFaces()))
		mesh = simplified
	}

	codecMesh := codec.NewMesh()
	if err := translate.Export(mesh, codecMesh); err != nil {
		logger.Log.Fatal("exporting mesh", zap.Error(err))
	}

	if err := os.WriteFile(fs.Arg(1), codec.Encode(codecMesh), 0644); err != nil {
		logger.Log.Fatal("writing codec mesh", zap.String("path", fs.Arg(1)), zap.Error(err))
	}
	logger.Log.Info("encoded mesh",
		zap.String("path", fs.Arg(1)),
		zap.Int("triangles", codecMesh.NumFaces()),
		zap.Int("codecPoints", codecMesh.NumPoints()))
}

func cmdDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML config file")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: scenecodec decode [options] <in.scmesh> <out.gltf>")
		os.Exit(1)
	}

	setup(*configPath)
	defer logger.Sync()

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		logger.Log.Fatal("reading codec mesh", zap.String("path", fs.Arg(0)), zap.Error(err))
	}

	codecMesh, err := codec.Decode(data)
	if err != nil {
		logger.Log.Fatal("decoding codec mesh", zap.Error(err))
	}

	layer, err := translate.Import(codecMesh)
	if err != nil {
		logger.Log.Fatal("importing mesh", zap.Error(err))
	}
	logger.Log.Info("reconstructed mesh",
		zap.Int("points", layer.Mesh.NumPoints()),
		zap.Int("faces", layer.Mesh.NumFaces()),
		zap.Int("holes", len(layer.Mesh.HoleIndices)))

	if err := gltfio.Save(fs.Arg(1), layer); err != nil {
		logger.Log.Fatal("writing glTF", zap.String("path", fs.Arg(1)), zap.Error(err))
	}
	logger.Log.Info("decoded mesh", zap.String("path", fs.Arg(1)))
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: scenecodec info <in.scmesh>")
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	mesh, err := codec.Decode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("File:       %s\n", args[0])
	fmt.Printf("Triangles:  %d\n", mesh.NumFaces())
	fmt.Printf("Points:     %d\n", mesh.NumPoints())
	fmt.Printf("Attributes: %d\n", mesh.NumAttributes())
	for id := 0; id < mesh.NumAttributes(); id++ {
		a := mesh.Attribute(id)
		name := ""
		if md := mesh.AttributeMetadata(id); md != nil {
			if v, ok := md.EntryString(translate.MetadataNameKey); ok {
				name = " name=" + v
			}
		}
		fmt.Printf("  [%d] %s %dx%s values=%d%s\n",
			id, a.Type(), a.NumComponents(), a.DataType(), a.NumValues(), name)
	}
}
