// Package ffi exposes a cgo-callable boundary over the library façade, per
// §6: an opaque handle type, creation/destruction functions, and solve
// functions that write an integer result code and an output plan length.
//
// Unlike the original Rust implementation's Box::into_raw handle scheme,
// handles here are int32 keys into a mutex-protected registry — no Go
// pointer ever crosses the cgo boundary.
package ffi

/*
#include <stdlib.h>
*/
import "C"

import (
	"sync"
	"unsafe"

	temporalplan "github.com/corox/temporalplan"
	"github.com/corox/temporalplan/search"
	"github.com/corox/temporalplan/tplerr"
)

// Result codes, per §6.
const (
	ResultSuccess         C.int = 0
	ResultSolutionFound   C.int = 1
	ResultNoSolution      C.int = 2
	ResultParseError      C.int = 3
	ResultFileError       C.int = 4
	ResultInvalidHandle   C.int = 5
)

var (
	registryMu sync.Mutex
	registry   = make(map[int32]*handleEntry)
	nextHandle int32
)

type handleEntry struct {
	planner *temporalplan.Planner
	task    *temporalplan.Task
	plan    *temporalplan.Plan
}

//export temporalplanner_create
func temporalplanner_create() C.int {
	registryMu.Lock()
	defer registryMu.Unlock()
	nextHandle++
	id := nextHandle
	registry[id] = &handleEntry{planner: temporalplan.New()}
	return C.int(id)
}

//export temporalplanner_destroy
func temporalplanner_destroy(handle C.int) C.int {
	registryMu.Lock()
	defer registryMu.Unlock()
	id := int32(handle)
	if _, ok := registry[id]; !ok {
		return ResultInvalidHandle
	}
	delete(registry, id)
	return ResultSuccess
}

//export temporalplanner_solve_files
func temporalplanner_solve_files(handle C.int, domainPath, problemPath *C.char, outPlanLength *C.int) C.int {
	entry, ok := lookup(int32(handle))
	if !ok {
		return ResultInvalidHandle
	}
	res, err := entry.planner.SolveFromFiles(C.GoString(domainPath), C.GoString(problemPath))
	return finishSolve(entry, res, err, outPlanLength)
}

//export temporalplanner_solve_content
func temporalplanner_solve_content(handle C.int, domainText, problemText *C.char, outPlanLength *C.int) C.int {
	entry, ok := lookup(int32(handle))
	if !ok {
		return ResultInvalidHandle
	}
	res, err := entry.planner.SolveFromStrings(C.GoString(domainText), C.GoString(problemText))
	return finishSolve(entry, res, err, outPlanLength)
}

func finishSolve(entry *handleEntry, res search.Result, err error, outPlanLength *C.int) C.int {
	if err != nil {
		if kind, ok := tplerr.KindOf(err); ok && kind == tplerr.IOFailure {
			return ResultFileError
		}
		return ResultParseError
	}
	switch res.Status {
	case search.StatusSolved:
		entry.plan = res.Plan
		*outPlanLength = C.int(len(res.Plan.Steps))
		return ResultSolutionFound
	case search.StatusNoSolution:
		*outPlanLength = 0
		return ResultNoSolution
	default:
		*outPlanLength = 0
		return ResultNoSolution
	}
}

//export temporalplanner_get_version
func temporalplanner_get_version() *C.char {
	return C.CString(temporalplan.Version)
}

//export temporalplanner_free_string
func temporalplanner_free_string(s *C.char) {
	C.free(unsafe.Pointer(s))
}

func lookup(id int32) (*handleEntry, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()
	e, ok := registry[id]
	return e, ok
}
