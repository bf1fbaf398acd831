//==============================================================================
// mps: reader and writer for the MPS linear-program text format
//==============================================================================

// The reader consumes the de-facto-standard fixed-section MPS layout:
// NAME, ROWS, COLUMNS (with INTORG/INTEND integrality markers), RHS, BOUNDS,
// ENDATA. Parsing is deliberately lenient: malformed numeric tokens, unknown
// sections, and references to undeclared rows or columns are skipped, but
// never silently — each skip is recorded in the parse report and logged as a
// warning. Only a structurally hopeless file (no rows, no columns) is an
// error. The writer emits a free-format file the reader round-trips.

package mip

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MPSReport collects everything the lenient parser skipped.
type MPSReport struct {
	Warnings []string // one entry per skipped or repaired record
}

func (rep *MPSReport) warnf(line int, format string, args ...interface{}) {
	rep.Warnings = append(rep.Warnings,
		fmt.Sprintf("line %d: ", line)+fmt.Sprintf(format, args...))
}

// ReadMPSFile parses the MPS file at the given path. Parse warnings are
// logged on the package logger.
// In case of failure, function returns an error.
func ReadMPSFile(path string) (*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open MPS file %s", path)
	}
	defer f.Close()
	return ReadMPS(f)
}

// ReadMPS parses MPS text from r. Parse warnings are logged on the package
// logger.
// In case of failure, function returns an error.
func ReadMPS(r io.Reader) (*Problem, error) {
	prob, rep, err := ParseMPS(r)
	if err != nil {
		return nil, err
	}
	log := Logger()
	for _, w := range rep.Warnings {
		log.Warn().Str("component", "mps").Msg(w)
	}
	if len(rep.Warnings) > 0 {
		log.Warn().Str("component", "mps").
			Int("skipped", len(rep.Warnings)).Msg("lenient parse skipped records")
	}
	return prob, nil
}

// mps parser section states.
const (
	secNone = iota
	secRows
	secColumns
	secRhs
	secBounds
	secSkip // inside an unknown section
)

// ParseMPS parses MPS text from r and returns the problem together with the
// full parse report. The problem's objective sense is Minimize, the MPS
// default; callers may flip Problem.Sense afterwards.
// In case of failure, function returns an error.
func ParseMPS(r io.Reader) (*Problem, *MPSReport, error) {
	prob := NewProblem("", Minimize)
	rep := &MPSReport{}

	rowIdx := make(map[string]int) // constraint name -> index
	colIdx := make(map[string]int) // variable name -> index
	objName := ""
	markInteger := false
	section := secNone
	lineNum := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if len(line) == 0 || line[0] == '*' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		// Section keywords start in column one.
		if line[0] != ' ' && line[0] != '\t' {
			switch strings.ToUpper(fields[0]) {
			case "NAME":
				if len(fields) > 1 {
					prob.Name = fields[1]
				}
				section = secNone
			case "ROWS":
				section = secRows
			case "COLUMNS":
				section = secColumns
			case "RHS":
				section = secRhs
			case "BOUNDS":
				section = secBounds
			case "ENDATA":
				return finishMPS(prob, rep, objName)
			default:
				rep.warnf(lineNum, "unknown section %q skipped", fields[0])
				section = secSkip
			}
			continue
		}

		// Integrality markers appear inside COLUMNS.
		if len(fields) >= 3 && fields[1] == "'MARKER'" {
			switch fields[2] {
			case "'INTORG'":
				markInteger = true
			case "'INTEND'":
				markInteger = false
			default:
				rep.warnf(lineNum, "unknown marker %q skipped", fields[2])
			}
			continue
		}

		switch section {
		case secRows:
			if len(fields) < 2 {
				rep.warnf(lineNum, "short ROWS record skipped")
				continue
			}
			typ, name := strings.ToUpper(fields[0]), fields[1]
			switch typ {
			case "N":
				if objName == "" {
					objName = name
				} else {
					rep.warnf(lineNum, "extra objective row %q skipped", name)
				}
			case "L":
				rowIdx[name] = prob.AddConstraint(name, LessEqual, 0)
			case "G":
				rowIdx[name] = prob.AddConstraint(name, GreaterEqual, 0)
			case "E":
				rowIdx[name] = prob.AddConstraint(name, Equal, 0)
			default:
				rep.warnf(lineNum, "row %q has unknown type %q, skipped", name, typ)
			}

		case secColumns:
			if len(fields) < 3 {
				rep.warnf(lineNum, "short COLUMNS record skipped")
				continue
			}
			colName := fields[0]
			j, ok := colIdx[colName]
			if !ok {
				kind := Continuous
				if markInteger {
					kind = Integer
				}
				j = prob.AddVariable(colName, kind)
				colIdx[colName] = j
			}
			// Records carry one or two (row, value) pairs.
			for k := 1; k < len(fields); k += 2 {
				if k+1 >= len(fields) {
					rep.warnf(lineNum, "dangling row name %q skipped", fields[k])
					break
				}
				rowName := fields[k]
				val, err := strconv.ParseFloat(fields[k+1], 64)
				if err != nil {
					rep.warnf(lineNum, "bad coefficient %q for row %q skipped", fields[k+1], rowName)
					continue
				}
				if rowName == objName {
					prob.Variables[j].Cost += val
					continue
				}
				i, ok := rowIdx[rowName]
				if !ok {
					rep.warnf(lineNum, "coefficient names undeclared row %q, skipped", rowName)
					continue
				}
				if err := prob.AddConstraintCoefficient(i, j, val); err != nil {
					rep.warnf(lineNum, "coefficient rejected: %v", err)
				}
			}

		case secRhs:
			if len(fields) < 3 {
				rep.warnf(lineNum, "short RHS record skipped")
				continue
			}
			for k := 1; k < len(fields); k += 2 {
				if k+1 >= len(fields) {
					rep.warnf(lineNum, "dangling row name %q skipped", fields[k])
					break
				}
				rowName := fields[k]
				val, err := strconv.ParseFloat(fields[k+1], 64)
				if err != nil {
					rep.warnf(lineNum, "bad RHS %q for row %q skipped", fields[k+1], rowName)
					continue
				}
				if rowName == objName {
					// RHS on the objective row is the negated constant.
					prob.ObjConst = -val
					continue
				}
				i, ok := rowIdx[rowName]
				if !ok {
					rep.warnf(lineNum, "RHS names undeclared row %q, skipped", rowName)
					continue
				}
				prob.Constraints[i].Rhs = val
			}

		case secBounds:
			if len(fields) < 3 {
				rep.warnf(lineNum, "short BOUNDS record skipped")
				continue
			}
			typ := strings.ToUpper(fields[0])
			colName := fields[2]
			j, ok := colIdx[colName]
			if !ok {
				rep.warnf(lineNum, "bound names undeclared column %q, skipped", colName)
				continue
			}
			val := 0.0
			needsValue := typ != "FR" && typ != "MI" && typ != "PL" && typ != "BV"
			if needsValue {
				if len(fields) < 4 {
					rep.warnf(lineNum, "bound %q missing value, skipped", typ)
					continue
				}
				var err error
				val, err = strconv.ParseFloat(fields[3], 64)
				if err != nil {
					rep.warnf(lineNum, "bad bound value %q skipped", fields[3])
					continue
				}
			}
			v := &prob.Variables[j]
			switch typ {
			case "UP":
				v.Ub = val
			case "LO":
				v.Lb = val
			case "FX":
				v.Lb, v.Ub = val, val
			case "FR":
				v.Lb, v.Ub = math.Inf(-1), math.Inf(1)
			case "MI":
				v.Lb = math.Inf(-1)
			case "PL":
				v.Ub = math.Inf(1)
			case "BV":
				v.Kind = Binary
				v.Lb, v.Ub = 0, 1
			case "UI":
				v.Kind = Integer
				v.Ub = val
			case "LI":
				v.Kind = Integer
				v.Lb = val
			default:
				rep.warnf(lineNum, "unknown bound type %q skipped", typ)
			}

		case secSkip:
			// Unknown section body; already warned at the header.

		case secNone:
			rep.warnf(lineNum, "data before any section skipped")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, rep, errors.Wrap(err, "reading MPS input")
	}
	rep.warnf(lineNum, "missing ENDATA")
	return finishMPS(prob, rep, objName)
}

// finishMPS applies the structural checks that leniency does not cover.
// In case of failure, function returns an error.
func finishMPS(prob *Problem, rep *MPSReport, objName string) (*Problem, *MPSReport, error) {
	if objName == "" {
		return nil, rep, errors.Wrap(ErrBadModel, "MPS input declares no objective row")
	}
	if len(prob.Variables) == 0 {
		return nil, rep, errors.Wrap(ErrBadModel, "MPS input declares no columns")
	}
	return prob, rep, nil
}

//==============================================================================
// WRITER
//==============================================================================

// WriteMPSFile writes the problem to path in MPS format.
// In case of failure, function returns an error.
func WriteMPSFile(path string, prob *Problem) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create MPS file %s", path)
	}
	defer f.Close()
	return WriteMPS(f, prob)
}

// WriteMPS writes the problem to w in MPS format. Every variable appears in
// COLUMNS (with its objective coefficient, possibly zero) so the file
// round-trips through ReadMPS with variable order preserved.
// In case of failure, function returns an error.
func WriteMPS(w io.Writer, prob *Problem) error {
	bw := bufio.NewWriter(w)

	name := prob.Name
	if name == "" {
		name = "NONAME"
	}
	fmt.Fprintf(bw, "NAME          %s\n", name)

	const objRow = "COST"
	fmt.Fprintf(bw, "ROWS\n N  %s\n", objRow)
	for i := range prob.Constraints {
		con := &prob.Constraints[i]
		typ := "L"
		switch con.Rel {
		case GreaterEqual:
			typ = "G"
		case Equal:
			typ = "E"
		}
		fmt.Fprintf(bw, " %s  %s\n", typ, con.Name)
	}

	fmt.Fprintf(bw, "COLUMNS\n")
	inInteger := false
	markers := 0
	for j := range prob.Variables {
		v := &prob.Variables[j]
		isInt := v.Kind != Continuous
		if isInt && !inInteger {
			fmt.Fprintf(bw, "    MARKER%d   'MARKER'   'INTORG'\n", markers)
			markers++
			inInteger = true
		}
		if !isInt && inInteger {
			fmt.Fprintf(bw, "    MARKER%d   'MARKER'   'INTEND'\n", markers)
			markers++
			inInteger = false
		}
		fmt.Fprintf(bw, "    %-10s %-10s %.12g\n", v.Name, objRow, v.Cost)
		for i := range prob.Constraints {
			if a, ok := prob.Constraints[i].Coeffs[j]; ok && a != 0 {
				fmt.Fprintf(bw, "    %-10s %-10s %.12g\n", v.Name, prob.Constraints[i].Name, a)
			}
		}
	}
	if inInteger {
		fmt.Fprintf(bw, "    MARKER%d   'MARKER'   'INTEND'\n", markers)
	}

	fmt.Fprintf(bw, "RHS\n")
	for i := range prob.Constraints {
		if prob.Constraints[i].Rhs != 0 {
			fmt.Fprintf(bw, "    RHS        %-10s %.12g\n", prob.Constraints[i].Name, prob.Constraints[i].Rhs)
		}
	}
	if prob.ObjConst != 0 {
		fmt.Fprintf(bw, "    RHS        %-10s %.12g\n", objRow, -prob.ObjConst)
	}

	fmt.Fprintf(bw, "BOUNDS\n")
	for j := range prob.Variables {
		v := &prob.Variables[j]
		switch {
		case v.Kind == Binary:
			fmt.Fprintf(bw, " BV BND        %s\n", v.Name)
		default:
			if math.IsInf(v.Lb, -1) && math.IsInf(v.Ub, 1) {
				fmt.Fprintf(bw, " FR BND        %s\n", v.Name)
				continue
			}
			if v.Lb == v.Ub {
				fmt.Fprintf(bw, " FX BND        %-10s %.12g\n", v.Name, v.Lb)
				continue
			}
			if math.IsInf(v.Lb, -1) {
				fmt.Fprintf(bw, " MI BND        %s\n", v.Name)
			} else if v.Lb != 0 {
				fmt.Fprintf(bw, " LO BND        %-10s %.12g\n", v.Name, v.Lb)
			}
			if !math.IsInf(v.Ub, 1) {
				fmt.Fprintf(bw, " UP BND        %-10s %.12g\n", v.Name, v.Ub)
			}
		}
	}

	fmt.Fprintf(bw, "ENDATA\n")
	return errors.Wrap(bw.Flush(), "writing MPS output")
}
