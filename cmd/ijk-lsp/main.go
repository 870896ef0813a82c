// Command ijk-lsp runs the Ijk language server over stdio.
package main

import (
	"github.com/sflorezs1/IJack-nand2tetris/internal/server"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	glspServer "github.com/tliron/glsp/server"
)

const (
	name    = "ijk-lsp"
	version = "0.1.0"
)

func main() {
	commonlog.Configure(1, nil)

	handler, _ := server.NewHandler(name, version)

	s := glspServer.NewServer(handler, name, false)

	s.RunStdio()
}
