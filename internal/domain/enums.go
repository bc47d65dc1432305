package domain

import "fmt"

type Stage string

const (
	StageTodo    Stage = "todo"
	StageDoing   Stage = "doing"
	StageTesting Stage = "testing"
	StageDone    Stage = "done"
)

// Stages lists the workflow buckets in board order.
var Stages = []Stage{StageTodo, StageDoing, StageTesting, StageDone}

// RenderOrder is the order progress bar segments are drawn in.
var RenderOrder = []Stage{StageDone, StageTesting, StageDoing, StageTodo}

// ParseStage converts a string into a Stage.
func ParseStage(s string) (Stage, error) {
	switch Stage(s) {
	case StageTodo, StageDoing, StageTesting, StageDone:
		return Stage(s), nil
	}
	return "", fmt.Errorf("unknown stage %q (want todo, doing, testing or done)", s)
}

type CheckItemState string

const (
	CheckItemComplete   CheckItemState = "complete"
	CheckItemIncomplete CheckItemState = "incomplete"
)
