package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	gawki "github.com/benhoyt/goawk/interp"
	gawkp "github.com/benhoyt/goawk/parser"
	"github.com/dianpeng/sheetql/cg"
	"github.com/dianpeng/sheetql/config"
	"github.com/dianpeng/sheetql/exec"
	"github.com/dianpeng/sheetql/plan"
	"github.com/dianpeng/sheetql/sql"
	"github.com/dianpeng/sheetql/table"
	"github.com/dianpeng/sheetql/tableio"
	"github.com/fatih/color"
	"io"
	"os"
	"strings"
)

type listFlag []string

func (self *listFlag) String() string {
	return strings.Join(*self, ",")
}

func (self *listFlag) Set(v string) error {
	*self = append(*self, v)
	return nil
}

var (
	fOp = flag.String(
		"op",
		"where",
		"operator to run, one of where, select, order_by, group_by, left_join",
	)
	fExpr = flag.String(
		"e",
		"",
		"expression of the operator, or the key of the left table for left_join",
	)
	fAgg = flag.String(
		"agg",
		"",
		"aggregation list for group_by, ie \"$SUM(*B), $COUNT(1)\"",
	)
	fJoin = flag.String(
		"join",
		"",
		"right table file of left_join",
	)
	fKey2 = flag.String(
		"key2",
		"",
		"key of the right table for left_join",
	)
	fHeader = flag.Int(
		"header",
		-1,
		"header row count, negative uses the SKIP_HEADER_COUNT default",
	)
	fFormat = flag.String(
		"format",
		tableio.FormatTable,
		"output format, one of table, csv, tsv, json",
	)
	fSheet = flag.String(
		"sheet",
		"",
		"file used to resolve #A1 style cell references",
	)
	fProps = flag.String(
		"props",
		"",
		"YAML file persisting the defaults, in memory when empty",
	)
	fEmitAwk = flag.Bool(
		"emit-awk",
		false,
		"print the awk program compiled from the operator instead of running it",
	)
	fViaAwk = flag.Bool(
		"via-awk",
		false,
		"run where, select and group_by through the compiled awk program",
	)
	fAwk = flag.String(
		"awk",
		"",
		"awk program run over the result, the result is fed to it as TSV",
	)
	fExplain = flag.Bool(
		"explain",
		false,
		"print the resolved plan of the operator",
	)
	fSet = flag.String(
		"set",
		"",
		"KEY=VALUE, store a default, requires -at",
	)
	fAt = flag.String(
		"at",
		"",
		"current local time as HH:MM, guards -set",
	)
	fRemove = flag.String(
		"remove",
		"",
		"remove a stored default",
	)
	fDefaults = flag.Bool(
		"defaults",
		false,
		"list stored defaults",
	)
	fCells listFlag
)

func init() {
	flag.Var(&fCells, "cell", "ADDR=VALUE, value of a cell reference, repeatable")
}

func oops(stage string, err error) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	var perr *sql.ParseError
	if errors.As(err, &perr) && perr.Source != "" {
		fmt.Fprintf(os.Stderr, "%s [%s] %s\n", red("ERROR"), stage, perr.Format(perr.Source))
	} else {
		fmt.Fprintf(os.Stderr, "%s [%s] %s\n", red("ERROR"), stage, err)
	}
	os.Exit(-1)
}

func info(msg string) {
	fmt.Println(color.GreenString("OK") + " " + msg)
}

func ruleOfOp(op string) (int, bool) {
	switch strings.ToLower(op) {
	case "where":
		return sql.RuleWhere, true
	case "select":
		return sql.RuleSelect, true
	case "order_by":
		return sql.RuleOrderBy, true
	case "group_by", "left_join":
		return sql.RuleGroupBy, true
	default:
		return 0, false
	}
}

func splitAssign(v string) (string, string, error) {
	idx := strings.Index(v, "=")
	if idx <= 0 {
		return "", "", fmt.Errorf("expect KEY=VALUE, got %q", v)
	}
	return strings.TrimSpace(v[:idx]), v[idx+1:], nil
}

func readInput() table.Table {
	if flag.NArg() > 0 {
		t, err := tableio.Load(flag.Arg(0))
		if err != nil {
			oops("load", err)
		}
		return t
	}
	t, err := tableio.ReadCSV(os.Stdin, ',')
	if err != nil {
		oops("load", err)
	}
	return t
}

// cells given on the command line win over the sheet
func newHost() plan.Host {
	cells := plan.MapHost{}
	for _, x := range fCells {
		k, v, err := splitAssign(x)
		if err != nil {
			oops("cell", err)
		}
		if _, _, err := table.ParseAddress(k); err != nil {
			oops("cell", err)
		}
		cells[strings.ToUpper(k)] = table.Parse(v)
	}

	var sheet *plan.SheetHost
	if *fSheet != "" {
		t, err := tableio.Load(*fSheet)
		if err != nil {
			oops("sheet", err)
		}
		sheet = &plan.SheetHost{Sheet: t}
	}

	return plan.HostFunc(func(address string) (table.Cell, error) {
		if c, ok := cells[strings.ToUpper(strings.TrimSpace(address))]; ok {
			return c, nil
		}
		if sheet != nil {
			return sheet.CellValue(address)
		}
		return cells.CellValue(address)
	})
}

func newDefaults() *config.Defaults {
	if *fProps == "" {
		return config.NewDefaults(config.NewMemoryStore())
	}
	return config.NewDefaults(config.NewFileStore(*fProps))
}

// returns true when an admin command ran
func runAdmin(d *config.Defaults) bool {
	switch {
	case *fSet != "":
		k, v, err := splitAssign(*fSet)
		if err != nil {
			oops("set", err)
		}
		msg, err := d.SetDefault(k, table.Parse(v).Value(), *fAt)
		if err != nil {
			oops("set", err)
		}
		info(msg)
		return true

	case *fRemove != "":
		if err := d.RemoveDefault(*fRemove); err != nil {
			oops("remove", err)
		}
		info("removed " + *fRemove)
		return true

	case *fDefaults:
		all, err := d.AllDefaults()
		if err != nil {
			oops("defaults", err)
		}
		for _, x := range all {
			fmt.Printf("[%s] : %s\n", x[0], x[1])
		}
		return true
	}
	return false
}

func headerArg() []int {
	if *fHeader < 0 {
		return nil
	}
	return []int{*fHeader}
}

func runOp(e *exec.Engine, t table.Table) table.Table {
	hc := headerArg()
	var out table.Table
	var err error

	switch strings.ToLower(*fOp) {
	case "where":
		out, err = e.Where(t, *fExpr, hc...)
	case "select":
		out, err = e.Select(t, *fExpr, hc...)
	case "order_by":
		out, err = e.OrderBy(t, *fExpr, hc...)
	case "group_by":
		out, err = e.GroupBy(t, *fExpr, *fAgg, hc...)
	case "left_join":
		if *fJoin == "" {
			oops("left_join", fmt.Errorf("-join is required"))
		}
		right, lerr := tableio.Load(*fJoin)
		if lerr != nil {
			oops("load", lerr)
		}
		out, err = e.LeftJoin(t, *fExpr, right, *fKey2, hc...)
	default:
		err = fmt.Errorf("unknown operator %q", *fOp)
	}
	if err != nil {
		oops(*fOp, err)
	}
	return out
}

func compileAwk(e *exec.Engine, t table.Table) string {
	rule, ok := ruleOfOp(*fOp)
	if !ok || strings.ToLower(*fOp) == "left_join" {
		oops("code-gen", fmt.Errorf("operator %q cannot be compiled to awk", *fOp))
	}
	p, cnt, err := e.Explain(t, rule, *fExpr, *fAgg, headerArg()...)
	if err != nil {
		oops("plan", err)
	}
	prog, err := cg.Generate(p, &cg.Config{HeaderCount: cnt})
	if err != nil {
		oops("code-gen", err)
	}
	return prog
}

func runAwk(code string, input io.Reader, output io.Writer) {
	prog, err := gawkp.ParseProgram([]byte(code), nil)
	if err != nil {
		oops("awk", err)
	}
	status, err := gawki.ExecProgram(prog, &gawki.Config{
		Stdin:  input,
		Output: output,
		Error:  os.Stderr,
	})
	if err != nil {
		oops("awk", err)
	}
	if status != 0 {
		oops("awk", fmt.Errorf("exit status %d", status))
	}
}

func tsvOf(t table.Table) *bytes.Buffer {
	buf := &bytes.Buffer{}
	if err := tableio.WriteTSV(buf, t); err != nil {
		oops("write", err)
	}
	return buf
}

func main() {
	flag.Parse()

	defaults := newDefaults()
	if runAdmin(defaults) {
		os.Exit(0)
	}

	e := exec.NewEngine(newHost(), defaults)
	t := readInput()

	if *fExplain {
		rule, ok := ruleOfOp(*fOp)
		if !ok {
			oops("explain", fmt.Errorf("unknown operator %q", *fOp))
		}
		p, _, err := e.Explain(t, rule, *fExpr, *fAgg, headerArg()...)
		if err != nil {
			oops("plan", err)
		}
		fmt.Print(p.Print())
		os.Exit(0)
	}

	if *fEmitAwk {
		fmt.Println(compileAwk(e, t))
		os.Exit(0)
	}

	if *fViaAwk {
		prog := compileAwk(e, t)
		if *fAwk == "" {
			runAwk(prog, tsvOf(t), os.Stdout)
		} else {
			mid := &bytes.Buffer{}
			runAwk(prog, tsvOf(t), mid)
			runAwk(*fAwk, mid, os.Stdout)
		}
		os.Exit(0)
	}

	out := runOp(e, t)
	if *fAwk != "" {
		runAwk(*fAwk, tsvOf(out), os.Stdout)
		os.Exit(0)
	}

	hc, err := e.HeaderCount(headerArg()...)
	if err != nil {
		oops("header", err)
	}
	// select and group_by always emit a single header row
	switch strings.ToLower(*fOp) {
	case "select", "group_by":
		hc = 1
	}
	if err := tableio.Write(os.Stdout, out, *fFormat, hc); err != nil {
		oops("write", err)
	}
	os.Exit(0)
}
