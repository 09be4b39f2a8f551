package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/noteflow/pitch2midi/internal/convert"
	pexec "github.com/noteflow/pitch2midi/internal/exec"
	"github.com/noteflow/pitch2midi/internal/midifile"
	"github.com/noteflow/pitch2midi/internal/node"
	"github.com/noteflow/pitch2midi/internal/progress"
	"github.com/noteflow/pitch2midi/internal/server"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pitch2midi",
	Short: "Convert audio to MIDI files using Basic Pitch",
	Long: `pitch2midi runs the Basic Pitch pitch-detection model over an
audio file and writes the detected notes as a standard MIDI file.

Pipeline: audio → pitch detection → note events → MIDI file`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an audio file to a MIDI file",
	Long: `Transcribe an audio file with Basic Pitch and save the result
as a single-track MIDI file.

Examples:
  pitch2midi convert --input song.wav --output-dir ./out
  pitch2midi convert -i song.mp3 -o ./out --file-name song.mid --tempo 90
  pitch2midi convert -i song.wav -o ./out --onset-threshold 0.7`,
	RunE: runConvert,
}

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "Print the registered node schemas as JSON",
	RunE:  runNodes,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the node host HTTP interface",
	Long: `Serve the node registry over HTTP: schema discovery for a
node-graph UI and a run endpoint per node.

Example:
  pitch2midi serve --port 8080`,
	RunE: runServe,
}

var (
	// convert flags
	inputPath      string
	outputDir      string
	fileName       string
	tempo          int
	onsetThreshold float64
	frameThreshold float64
	verbose        bool

	// shared flags
	scriptsDir string
	pythonPath string

	// serve flags
	port int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&scriptsDir, "scripts-dir", "scripts", "Directory containing the inference scripts")
	rootCmd.PersistentFlags().StringVar(&pythonPath, "python", "", "Python interpreter (default: scripts venv, then python3)")

	convertCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input audio file (required)")
	convertCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Output directory for the MIDI file (required)")
	convertCmd.Flags().StringVar(&fileName, "file-name", midifile.DefaultFileName, "Output MIDI file name")
	convertCmd.Flags().IntVar(&tempo, "tempo", midifile.DefaultTempo, "Tempo in BPM (20-300)")
	convertCmd.Flags().Float64Var(&onsetThreshold, "onset-threshold", convert.DefaultOnsetThreshold, "Note onset confidence threshold (0-1)")
	convertCmd.Flags().Float64Var(&frameThreshold, "frame-threshold", convert.DefaultFrameThreshold, "Note sustain confidence threshold (0-1)")
	convertCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	convertCmd.MarkFlagRequired("input")
	convertCmd.MarkFlagRequired("output-dir")

	serveCmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(nodesCmd)
	rootCmd.AddCommand(serveCmd)
}

// newRegistry wires both nodes against a shared script runner
func newRegistry() (*node.Registry, error) {
	runner := pexec.NewRunner(pythonPath, scriptsDir)
	reg := node.NewRegistry()
	if err := reg.Register(convert.New(runner)); err != nil {
		return nil, err
	}
	if err := reg.Register(midifile.NewWriter()); err != nil {
		return nil, err
	}
	return reg, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	reporter := progress.NewReporter(os.Stdout, verbose)
	runner := pexec.NewRunner(pythonPath, scriptsDir)
	converter := convert.New(runner)
	ctx := cmd.Context()

	// Preflight: fail with the missing package named instead of an
	// opaque inference error later
	if err := runner.CheckPythonDependency(ctx, "basic_pitch"); err != nil {
		reporter.Error(err)
		return err
	}
	reporter.Update("Using Python interpreter: %s", runner.PythonPath)

	reporter.StartStage(progress.StageTranscribe)
	notes, err := converter.Convert(ctx, inputPath, onsetThreshold, frameThreshold)
	if err != nil {
		reporter.Error(err)
		return err
	}
	reporter.StageComplete("Detected %d notes", len(notes))

	reporter.StartStage(progress.StageWrite)
	outPath := filepath.Join(outputDir, fileName)
	reporter.Update("Writing %s at %d BPM", outPath, tempo)
	if err := midifile.Write(notes.Tuples(), fileName, outputDir, tempo); err != nil {
		reporter.Error(err)
		return err
	}
	reporter.Done(outPath)
	return nil
}

func runNodes(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	var schemas []node.Schema
	for _, n := range reg.All() {
		schemas = append(schemas, n.Describe())
	}
	out, err := json.MarshalIndent(schemas, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}
	srv := server.New(server.Config{
		Port:     port,
		Registry: reg,
	})
	return srv.Run()
}
