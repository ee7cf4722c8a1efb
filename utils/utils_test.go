package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateDirIfNotExist(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cards", "GREEN_CITY")

	assert.False(t, FileExist(dir))
	assert.Nil(t, CreateDirIfNotExist(dir))
	assert.True(t, FileExist(dir))

	// Existing directories are left alone
	assert.Nil(t, CreateDirIfNotExist(dir))
}

func TestSafeFileName(t *testing.T) {
	testCases := []struct {
		name     string
		expected string
	}{
		{"GREEN CITY", "GREEN_CITY"},
		{"DSA Group", "DSA_Group"},
		{"R&D / Labs", "R_D_Labs"},
		{"جين دو", "جين_دو"},
		{"Jane_Q._Doe.vcf", "Jane_Q._Doe.vcf"},
		{"///", "_"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, SafeFileName(tc.name), "SafeFileName(%q)", tc.name)
	}
}
