package fuzztests

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	maxSeedBytes = 4 << 10 // 4 KiB на одно выражение
)

// builtinSeeds covers every operator, unary minus contexts and each error kind.
var builtinSeeds = []string{
	"",
	"2 + 3 * 4",
	"(2 + 3) * 4",
	"2 ^ 3 ^ 2",
	"-2 ^ 2",
	"2 ^ -1",
	"-(-(-1))",
	"1 - -1",
	"3 + 4 * 2 / (1 - 5) ^ 2 ^ 3",
	".5 + 5.",
	"1 / 0",
	"0 ^ -1",
	"(-8) ^ 0.5",
	"((1)",
	"1))",
	")(",
	"1 +",
	"1 2",
	"()",
	"1.2.3",
	"abc",
	"2 # 3",
	"λ",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add(s)
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// каждая непустая строка *.txt файлов это отдельное выражение
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".txt" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		file, err := os.Open(path)
		if err != nil {
			return nil
		}
		defer file.Close()
		sc := bufio.NewScanner(file)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			f.Add(clampSeed(line))
		}
		return nil
	})
}

func clampSeed(src string) string {
	if len(src) <= maxSeedBytes {
		return src
	}
	return src[:maxSeedBytes]
}
