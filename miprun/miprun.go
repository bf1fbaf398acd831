//==============================================================================
// miprun: Executable for running some mip package functions.
//==============================================================================

// This file contains wrapper functions demonstrating how the main mip
// functions are used: reading models from MPS files, building models
// directly, solving them, and displaying results.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-opt/mip"
	"github.com/pkg/errors"
)

// Default input and output files. If the files are in a different directory
// than the one where the executable is launched, full absolute path must be used.
var inputLP   string = "inputLp.txt"    // LP example MPS file
var inputMILP string = "inputMilp.txt"  // MILP example MPS file
var outMps    string = "model_out.txt"  // MPS output file

// Other useful package global variables. The solution is global so it can be
// displayed again after a solve without re-running it.
var pauseAfter int = 50          // number of items to print before pausing
var lastProb   *mip.Problem      // most recently loaded or built model
var lastSoln   *mip.Solution     // most recent solution

//==============================================================================

// printOptions displays the options that are available for testing.
// The function accepts no arguments and returns no values.
func printOptions() {

	fmt.Println("\nAvailable Options:")
	fmt.Println()
	fmt.Println(" 0 - EXIT program")
	fmt.Println(" 1 - read an MPS file and display model statistics")
	fmt.Println(" 2 - solve LP problem read from MPS file")
	fmt.Println(" 3 - solve MILP problem read from MPS file")
	fmt.Println(" 4 - build and solve a small MILP directly")
	fmt.Println(" 5 - display last solution")
	fmt.Println(" 6 - write last model to MPS file")

}

//==============================================================================

// wpPauseOutput is used to pause output at specific points so it does not scroll
// off the screen before the user has a chance to see it.
// The function accepts no arguments. The function returns an error which is
// interpretted by the calling function as a desire to abort the operation in progress.
func wpPauseOutput() error {
	var userString string

	fmt.Printf("Enter 'q' to abort, any other key to continue: ")
	fmt.Scanln(&userString)
	if userString == "q" || userString == "Q" {
		return errors.New("Aborted by user")
	}

	return nil
}

//==============================================================================

// wpPrintSoln prints the last solution. It presents the data in a formatted
// manner, and gives the user the option to pause periodically so output does
// not scroll off the screen. The function accepts no input and returns no values.
func wpPrintSoln() {
	var userString string
	var counter    int

	if lastSoln == nil {
		fmt.Printf("WARNING: No solution is available. Solve a problem first.\n")
		return
	}

	lastSoln.Print(os.Stdout)

	obj, values, ok := lastSoln.Best()
	if !ok {
		return
	}

	fmt.Printf("\nOBJECTIVE FUNCTION = %f\n\n", obj)

	userString = ""
	fmt.Printf("Display variable list [Y|N]: ")
	fmt.Scanln(&userString)
	if userString == "y" || userString == "Y" {
		fmt.Printf("Variables are:\n")
		fmt.Printf("%6s  %-10s %15s\n", "INDEX", "NAME", "VALUE")

		counter = 0
		for j, val := range values {
			name := ""
			if lastProb != nil && j < lastProb.NumVariables() {
				name = lastProb.Variables[j].Name
			}
			fmt.Printf("%6d  %-10s %15e\n", j, name, val)

			counter++
			if counter == pauseAfter {
				counter = 0
				userString = ""
				fmt.Printf("\nPAUSED... <CR> continue, any key to quit: ")
				fmt.Scanln(&userString)
				if userString != "" {
					break
				}
			} // end if pause required
		} // end for varb range
	} // end if printing varb list

}

//==============================================================================

// wpShowProb illustrates how a problem is read from an MPS file and displayed,
// but not solved. The function accepts no arguments.
// In case of failure, function returns an error.
func wpShowProb() error {
	var fileName string
	var err      error

	fmt.Printf("\nThis example illustrates how to read the model definition from an\n")
	fmt.Printf("MPS file and display statistics about the model without solving it.\n\n")

	fmt.Printf("Enter MPS file name [default '%s']: ", inputLP)
	fmt.Scanln(&fileName)
	if fileName == "" {
		fileName = inputLP
	}

	if lastProb, err = mip.ReadMPSFile(fileName); err != nil {
		return errors.Wrap(err, "wpShowProb failed reading MPS file")
	}

	mip.PrintStatistics(os.Stdout, mip.GetStatistics(lastProb))

	fmt.Printf("\nPaused after mip.PrintStatistics...\n")
	if err = wpPauseOutput(); err != nil {
		return errors.Wrap(err, "wpShowProb aborted")
	}

	return nil
}

//==============================================================================

// wpSolveProb illustrates an example of a problem read from file and solved.
// It reads the model, solves it with presolve enabled, prints the summary, and
// gives the user the option to see the detailed solution.
// The function accepts the MPS file name defining the model as input.
// In case of failure, function returns an error.
func wpSolveProb(fileName string) error {
	var userString string
	var err        error

	fmt.Printf("\nThis example illustrates how to read the model definition from an\n")
	fmt.Printf("MPS file, reduce the problem size, solve it, and display the results.\n\n")

	if lastProb, err = mip.ReadMPSFile(fileName); err != nil {
		return errors.Wrap(err, "wpSolveProb failed reading MPS file")
	}

	opts := mip.DefaultSolveOptions()
	opts.Presolve = true
	opts.TimeLimit = 300

	startTime := time.Now()
	lastSoln, err = mip.NewSolver().Solve(lastProb, opts)
	endTime := time.Now()

	if err != nil {
		return errors.Wrap(err, "wpSolveProb failed")
	}

	fmt.Printf("\nSOLUTION STATUS = %s\n", lastSoln.Status())
	if obj, _, ok := lastSoln.Best(); ok {
		fmt.Printf("OBJECTIVE FUNCTION = %f\n", obj)
	}
	fmt.Printf("Search explored %d nodes.\n", lastSoln.Iterations())
	fmt.Printf("Input MPS file read: '%s'\n", fileName)

	fmt.Printf("\nStarted at:  %s\n", startTime.Format("2006-01-02 15:04:05"))
	fmt.Printf("Finished at: %s\n\n", endTime.Format("2006-01-02 15:04:05"))

	fmt.Printf("Do you want to see the detailed solution [Y|N]: ")
	fmt.Scanln(&userString)
	if userString == "y" || userString == "Y" {
		wpPrintSoln()
	}

	return nil
}

//==============================================================================

// wpBuildAndSolve illustrates how a model is built directly with the package
// data structures and solved, without any input files. The function accepts
// no arguments.
// In case of failure, function returns an error.
func wpBuildAndSolve() error {
	var err error

	fmt.Printf("\nThis example builds a small knapsack MILP directly using the model\n")
	fmt.Printf("builder functions, solves it, and displays the results.\n\n")

	prob := mip.NewProblem("knapsack", mip.Maximize)
	x0 := prob.AddVariable("x0", mip.Binary)
	x1 := prob.AddVariable("x1", mip.Binary)
	x2 := prob.AddVariable("x2", mip.Binary)

	_ = prob.SetObjectiveCoefficient(x0, 5)
	_ = prob.SetObjectiveCoefficient(x1, 8)
	_ = prob.SetObjectiveCoefficient(x2, 3)

	row := prob.AddConstraint("cap", mip.LessEqual, 10)
	_ = prob.AddConstraintCoefficient(row, x0, 2)
	_ = prob.AddConstraintCoefficient(row, x1, 4)
	_ = prob.AddConstraintCoefficient(row, x2, 7)

	lastProb = prob
	lastSoln, err = mip.NewSolver().Solve(prob, mip.DefaultSolveOptions())
	if err != nil {
		return errors.Wrap(err, "wpBuildAndSolve failed")
	}

	fmt.Printf("SOLUTION STATUS = %s\n", lastSoln.Status())
	if obj, values, ok := lastSoln.Best(); ok {
		fmt.Printf("OBJECTIVE FUNCTION = %f\n", obj)
		fmt.Printf("Variable values: %v\n", values)
	}

	return nil
}

//==============================================================================

// wpWriteModel writes the last model to an MPS file. The function accepts no
// arguments.
// In case of failure, function returns an error.
func wpWriteModel() error {
	var fileName string

	if lastProb == nil {
		return errors.New("No model is available. Load or build a model first.")
	}

	fmt.Printf("Enter output file name [default '%s']: ", outMps)
	fmt.Scanln(&fileName)
	if fileName == "" {
		fileName = outMps
	}

	if err := mip.WriteMPSFile(fileName, lastProb); err != nil {
		return errors.Wrap(err, "wpWriteModel failed")
	}

	fmt.Printf("Model file saved: '%s'\n", fileName)
	return nil
}

//==============================================================================

// runMainWrapper displays the menu of options available, prompts the user to enter
// one of the options, and executes the command specified.
// The function accepts no arguments and returns no values.
func runMainWrapper() {
	var cmdOption string
	var err       error

	// Print header and enter infinite loop until user quits.

	fmt.Println("\nDEMONSTRATION OF MIP FUNCTIONALITY.")

	for {

		// Initialize variables, read command, and execute command.
		printOptions()
		cmdOption = ""
		fmt.Printf("\nEnter a new option: ")
		fmt.Scanln(&cmdOption)

		switch cmdOption {

		case "0":
			fmt.Println("\n===> NORMAL PROGRAM TERMINATION <===")
			fmt.Println()
			return

		case "1":
			// Load and show problem but don't solve.
			if err = wpShowProb(); err != nil {
				fmt.Println(err)
			}

		case "2":
			// Solve LP read from file.
			if err = wpSolveProb(inputLP); err != nil {
				fmt.Println(err)
			}

		case "3":
			// Solve MILP read from file.
			if err = wpSolveProb(inputMILP); err != nil {
				fmt.Println(err)
			}

		case "4":
			// Build a model directly and solve it.
			if err = wpBuildAndSolve(); err != nil {
				fmt.Println(err)
			}

		case "5":
			wpPrintSoln()

		case "6":
			if err = wpWriteModel(); err != nil {
				fmt.Println(err)
			}

		default:
			fmt.Printf("Unsupported option: '%s'\n", cmdOption)

		} // end of switch on cmdOption
	} // end for looping over commands

}

//==============================================================================

// main function calls the main wrapper. It accepts no arguments and returns
// no values.
func main() {

	runMainWrapper()
}

//============================ END OF FILE =====================================
