// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"github.com/tliron/commonlog"

	"xplain/repl"
)

func main() {
	commonlog.Configure(1, nil)
	repl.Start(os.Stdin, os.Stdout)
}
