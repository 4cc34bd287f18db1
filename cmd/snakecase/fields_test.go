package main

import (
	"bytes"
	"go/ast"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/Plasmatium/snakecase"
	"github.com/shoenig/test/must"
	"go.uber.org/zap/zaptest"
)

const modelsSource = `package models

type Base struct {
	ID        int64
	CreatedAt string
	Name      string
}

type User struct {
	Base
	Name       string
	EmailAddr  string ` + "`json:\"email,omitempty\"`" + `
	Password   string ` + "`json:\"-\"`" + `
	HTTPProxy  string
	APIKeyID   string ` + "`db:\"api_key\"`" + `
	nickname   string
	Links, URLs []string
}

type Node struct {
	*Node
	Value int
}

type hidden struct {
	Field int
}
`

func writeModels(t *testing.T) string {
	dir := t.TempDir()
	must.NoError(t, os.WriteFile(filepath.Join(dir, "models.go"), []byte(modelsSource), 0o644))
	return dir
}

func TestFieldLines(t *testing.T) {
	dir := writeModels(t)

	lines, err := fieldLines(filepath.Join(dir, "*.go"), "json", snakecase.ConvertASCII, zaptest.NewLogger(t))
	must.NoError(t, err)
	must.Eq(t, []string{
		"Base.ID\tid",
		"Base.CreatedAt\tcreated_at",
		"Base.Name\tname",
		"Node.Value\tvalue",
		"User.ID\tid",
		"User.CreatedAt\tcreated_at",
		"User.Name\tname",
		"User.EmailAddr\temail",
		"User.HTTPProxy\thttpproxy",
		"User.APIKeyID\tapikey_id",
		"User.Links\tlinks",
		"User.URLs\turls",
	}, lines)
}

const promotedSource = `package models

type base struct {
	CreatedAt string
	URLs      []string
}

type Account struct {
	base
	Links, URLs []int
	Alias       string "json:\"nick\""
}
`

func TestFieldLines_UnexportedEmbed(t *testing.T) {
	dir := t.TempDir()
	must.NoError(t, os.WriteFile(filepath.Join(dir, "account.go"), []byte(promotedSource), 0o644))

	lines, err := fieldLines(filepath.Join(dir, "*.go"), "json", snakecase.ConvertASCII, zaptest.NewLogger(t))
	must.NoError(t, err)
	must.Eq(t, []string{
		"Account.CreatedAt\tcreated_at",
		"Account.Links\tlinks",
		"Account.URLs\turls",
		"Account.Alias\tnick",
	}, lines)
}

func TestFieldLines_TagKey(t *testing.T) {
	dir := writeModels(t)

	lines, err := fieldLines(filepath.Join(dir, "*.go"), "db", snakecase.ConvertASCII, zaptest.NewLogger(t))
	must.NoError(t, err)
	must.SliceContains(t, lines, "User.APIKeyID\tapi_key")
	must.SliceContains(t, lines, "User.EmailAddr\temail_addr")
	must.SliceContains(t, lines, "User.Password\tpassword")
}

func TestFieldLines_ParseError(t *testing.T) {
	dir := t.TempDir()
	must.NoError(t, os.WriteFile(filepath.Join(dir, "broken.go"), []byte("package broken\ntype X struct {"), 0o644))

	_, err := fieldLines(filepath.Join(dir, "*.go"), "json", snakecase.ConvertASCII, zaptest.NewLogger(t))
	must.ErrorContains(t, err, "can't parse")
}

func TestRun_Fields(t *testing.T) {
	dir := writeModels(t)
	var out bytes.Buffer

	err := run(options{in: filepath.Join(dir, "*.go"), tag: "json"}, nil, nil, &out, zaptest.NewLogger(t))
	must.NoError(t, err)
	must.StrContains(t, out.String(), "User.EmailAddr\temail\n")
	must.StrNotContains(t, out.String(), "Password")
	must.StrNotContains(t, out.String(), "hidden")
}

func TestTagName(t *testing.T) {
	tests := []struct {
		tag      string
		key      string
		expected string
	}{
		{"`json:\"name,omitempty\"`", "json", "name"},
		{"`json:\",omitempty\"`", "json", ""},
		{"`json:\"-\"`", "json", "-"},
		{"`db:\"col\" json:\"name\"`", "db", "col"},
		{"`db:\"col\"`", "json", ""},
		{"\"json:\\\"aa\\\"\"", "json", "aa"},
	}

	for _, tc := range tests {
		must.Eq(t, tc.expected, tagName(&ast.BasicLit{Kind: token.STRING, Value: tc.tag}, tc.key))
	}
	must.Eq(t, "", tagName(nil, "json"))
}
