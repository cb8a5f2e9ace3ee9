package repl

import _ "embed"

// ptpythonConfig is the fixed configuration written next to a ptpython
// launch: dark-friendly colors, signatures, completion.
//
//go:embed ptpython_config.py
var ptpythonConfig string

// richInit is passed to "python3 -i -c" when the rich package is
// importable but no richer front-end is installed. It upgrades the plain
// REPL with pretty-printing, local-variable tracebacks, and colored
// prompts, degrading to colored prompts alone if rich vanished between
// probe and launch.
const richInit = "try:\n" +
	"    from rich import pretty, traceback, console\n" +
	"    pretty.install()\n" +
	"    traceback.install(show_locals=True)\n" +
	"    import sys\n" +
	"    sys.ps1 = '\\x01\\x1b[1;34m\\x02>>> \\x01\\x1b[0m\\x02'\n" +
	"    sys.ps2 = '\\x01\\x1b[1;36m\\x02... \\x01\\x1b[0m\\x02'\n" +
	"    console = console.Console()\n" +
	"    print('Rich enhanced REPL activated!')\n" +
	"except ImportError:\n" +
	"    import sys\n" +
	"    sys.ps1 = '\\x01\\x1b[1;34m\\x02>>> \\x01\\x1b[0m\\x02'\n" +
	"    sys.ps2 = '\\x01\\x1b[1;36m\\x02... \\x01\\x1b[0m\\x02'\n" +
	"    print('\\x1b[33mColored prompts activated\\x1b[0m')\n"
