package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvFileCandidates returns the .env locations probed at startup, in order.
func EnvFileCandidates(exeDir, workDir string) []string {
	return []string{
		filepath.Join(exeDir, ".env"),
		filepath.Join(exeDir, "..", ".env"),
		filepath.Join(exeDir, "..", "..", ".env"),
		filepath.Join(exeDir, "..", "..", "..", ".env"),
		filepath.Join(workDir, ".env"),
	}
}

// LoadEnvFiles loads the first existing candidate and returns its path.
// Variables already present in the process environment are not overridden.
func LoadEnvFiles(candidates []string) (string, error) {
	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		if err := godotenv.Load(path); err != nil {
			return path, err
		}
		return path, nil
	}

	return "", nil
}
