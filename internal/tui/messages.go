package tui

import (
	"github.com/matheuskafuri/headlines/internal/guardian"
)

// searchDoneMsg carries the sequence number of the search that produced it
// so a superseded result can be dropped.
type searchDoneMsg struct {
	seq    int
	result guardian.Result
}

type openErrMsg struct {
	err error
}

type prefsSavedMsg struct {
	err error
}
