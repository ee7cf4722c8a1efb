package models

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixturePath() string {
	path, _ := os.Getwd()
	return filepath.Join(path, "test-fixtures", "contacts.json")
}

func TestLoadDirectory(t *testing.T) {
	dir, err := LoadDirectory(fixturePath())
	require.Nil(t, err)

	assert.Equal(t, 3, dir.Len())
	assert.Equal(t, []string{"GREEN CITY", "DSA Group"}, dir.Sections())

	contact, err := dir.Find("DSA Group", "1")
	assert.Nil(t, err)
	assert.Equal(t, "Tony Stark", contact.Name)

	contact, err = dir.Find("GREEN CITY", "1")
	assert.Nil(t, err)
	assert.Equal(t, "Jane Q. Doe", contact.Name)
	assert.Equal(t, "جين دو", contact.NameArabic)
}

func TestLoadDirectoryErrors(t *testing.T) {
	_, err := LoadDirectory(filepath.Join(t.TempDir(), "missing.json"))
	assert.NotNil(t, err)

	badJSON := filepath.Join(t.TempDir(), "bad.json")
	require.Nil(t, os.WriteFile(badJSON, []byte("{not json"), 0600))
	_, err = LoadDirectory(badJSON)
	assert.NotNil(t, err)
}

func TestNewDirectoryValidation(t *testing.T) {
	testCases := []struct {
		description string
		contacts    []Contact
		expectedErr string
	}{
		{
			description: "Should reject a contact without a name",
			contacts:    []Contact{{SN: "1", Section: "A"}},
			expectedErr: "Name",
		},
		{
			description: "Should reject a contact without a section",
			contacts:    []Contact{{SN: "1", Name: "x"}},
			expectedErr: "Section",
		},
		{
			description: "Should reject duplicate section/sn pairs",
			contacts: []Contact{
				{SN: "1", Section: "A", Name: "x"},
				{SN: "1", Section: "A", Name: "y"},
			},
			expectedErr: ErrDuplicateKey.Error(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			_, err := NewDirectory(tc.contacts)
			require.NotNil(t, err)
			assert.True(t, strings.Contains(err.Error(), tc.expectedErr), err.Error())
		})
	}
}

func TestFindMissingContact(t *testing.T) {
	dir, err := NewDirectory([]Contact{{SN: "1", Section: "A", Name: "x"}})
	require.Nil(t, err)

	_, err = dir.Find("A", "2")
	assert.ErrorIs(t, err, ErrContactNotFound)

	_, err = dir.Find("B", "1")
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestInSection(t *testing.T) {
	dir, err := LoadDirectory(fixturePath())
	require.Nil(t, err)

	contacts, err := dir.InSection("GREEN CITY")
	require.Nil(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "1", contacts[0].SN)
	assert.Equal(t, "2", contacts[1].SN)

	_, err = dir.InSection("nowhere")
	assert.ErrorIs(t, err, ErrUnknownSection)

	name, ok := dir.LookupSection("dsa group")
	assert.True(t, ok)
	assert.Equal(t, "DSA Group", name)
}

func TestContactCard(t *testing.T) {
	dir, err := LoadDirectory(fixturePath())
	require.Nil(t, err)

	jane, _ := dir.Find("GREEN CITY", "1")
	assert.True(t, jane.HasEmail())
	assert.Contains(t, jane.VCard(), "TEL;TYPE=CELL,VOICE:+966501234567\r\n")
	assert.Contains(t, jane.VCard(), "TEL;TYPE=WORK,VOICE:+966126000000\r\n")

	omar, _ := dir.Find("GREEN CITY", "2")
	assert.False(t, omar.HasEmail())
	assert.NotContains(t, omar.VCard(), "EMAIL")
	assert.NotContains(t, omar.VCard(), "ADR")
}

func TestDirectoryReturnsCopies(t *testing.T) {
	dir, err := LoadDirectory(fixturePath())
	require.Nil(t, err)

	all := dir.All()
	all[0].Name = "changed"
	sections := dir.Sections()
	sections[0] = "changed"

	contact, _ := dir.Find("GREEN CITY", "1")
	assert.Equal(t, "Jane Q. Doe", contact.Name)
	assert.Equal(t, "GREEN CITY", dir.Sections()[0])
}

func TestStoreReload(t *testing.T) {
	store := NewStore(nil)
	assert.Nil(t, store.Directory())

	require.Nil(t, store.Reload(fixturePath()))
	assert.Equal(t, 3, store.Directory().Len())

	err := store.Reload(filepath.Join(t.TempDir(), "missing.json"))
	assert.NotNil(t, err)
	assert.Equal(t, 3, store.Directory().Len(), "failed reload should keep the previous directory")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Directory().Len()
			_ = store.Reload(fixturePath())
		}()
	}
	wg.Wait()
	assert.Equal(t, 3, store.Directory().Len())
}
