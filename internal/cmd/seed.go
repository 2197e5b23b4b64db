package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dendrascience/assetvfs/archive"
	"github.com/dendrascience/assetvfs/archive/fixture"
	"github.com/dendrascience/assetvfs/gamefs"
)

const (
	seedSearchPath = "id1"
	seedWad        = "base.wad"
	seedConfig     = "GameConfig.yaml"
)

// NewSeedCmd creates and returns the seed subcommand.
// It writes a small game installation built from generated archives.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		packages   int
		fileCount  int
		format     string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a sample game installation",
		Long: `Generate a sample game installation for trying out the other commands.

Writes a game configuration, a search path directory holding --packages
packages in the chosen format and a texture wad. Every package carries the
same data/ files with fresh UUID contents, so later packages shadow earlier
ones, plus a seed/ file only it provides.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, outputPath, packages, fileCount, format, verbose)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&packages, "packages", "p", 2, "Number of packages to generate")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 10, "Number of files per package and textures in the wad")
	cmd.Flags().StringVarP(&format, "format", "f", "idpak", "Package format: idpak, dkpak, sinpak or zip")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

func runSeed(cmd *cobra.Command, outputPath string, packages, fileCount int, format string, verbose bool) error {
	logger := gamefs.NewLogger(cmd.ErrOrStderr(), verbose)

	ext, err := packageExtension(format)
	if err != nil {
		return err
	}
	dir := filepath.Join(outputPath, seedSearchPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for i := 0; i < packages; i++ {
		files := []fixture.File{{
			Name: fmt.Sprintf("seed/pak%d.txt", i),
			Data: []byte(fmt.Sprintf("pak%d\n", i)),
		}}
		for j := 0; j < fileCount; j++ {
			files = append(files, fixture.File{
				Name: fmt.Sprintf("data/file%03d.txt", j),
				Data: []byte(uuid.New().String() + "\n"),
			})
		}
		data, err := buildPackage(format, files)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, fmt.Sprintf("pak%d.%s", i, ext))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write package: %w", err)
		}
		logger.Debug("wrote package", "path", path, "format", format, "entries", len(files))
	}

	textures := make([]fixture.File, fileCount)
	for j := range textures {
		id := uuid.New()
		textures[j] = fixture.File{
			Name: fmt.Sprintf("TEX%03d", j),
			Data: id[:],
			Type: 0x44,
		}
	}
	wadPath := filepath.Join(dir, seedWad)
	if err := os.WriteFile(wadPath, fixture.WAD(textures...), 0o644); err != nil {
		return fmt.Errorf("write wad: %w", err)
	}
	logger.Debug("wrote wad", "path", wadPath, "entries", len(textures))

	cfg := gamefs.Config{
		Name:       "Seeded " + format,
		SearchPath: seedSearchPath,
		PackageFormat: gamefs.PackageFormat{
			Extensions: []string{ext},
			Format:     format,
		},
		Textures: gamefs.TextureConfig{
			Format:      "wad2",
			Root:        "textures",
			SearchPaths: []string{seedSearchPath},
			Wads:        []string{seedWad},
		},
	}
	doc, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	configPath := filepath.Join(outputPath, seedConfig)
	if err := os.WriteFile(configPath, doc, 0o644); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}

	logger.Info("seeded game", "path", outputPath, "config", configPath, "packages", packages, "format", format)
	return nil
}

func packageExtension(format string) (string, error) {
	switch format {
	case "idpak", "dkpak":
		return "pak", nil
	case "sinpak":
		return "sin", nil
	case "zip":
		return "pk3", nil
	}
	return "", fmt.Errorf("%w: cannot seed %q packages", archive.ErrUnknownFormat, format)
}

func buildPackage(format string, files []fixture.File) ([]byte, error) {
	switch format {
	case "idpak":
		return fixture.IDPak(files...), nil
	case "dkpak":
		return fixture.DKPak(files...), nil
	case "sinpak":
		return fixture.SinPak(files...), nil
	case "zip":
		return fixture.Zip(files...)
	}
	return nil, fmt.Errorf("%w: cannot seed %q packages", archive.ErrUnknownFormat, format)
}
