package gallery

import (
	"context"
	"fmt"
)

// MovePhase names one of the two backend calls of a move.
type MovePhase string

const (
	PhaseCopy   MovePhase = "copy"
	PhaseDelete MovePhase = "delete"
)

// MovePlan is a move resolved to concrete keys. A move is a copy followed by
// a delete of the source; the two calls are independent and not atomic.
type MovePlan struct {
	Source      string
	Destination string
}

// MoveError reports which phase of a move failed.
type MoveError struct {
	Phase MovePhase
	Plan  MovePlan
	Err   error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %s to %s: %s failed: %v", e.Plan.Source, e.Plan.Destination, e.Phase, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// Stranded describes where the image is left after the failure.
func (e *MoveError) Stranded() string {
	if e.Phase == PhaseCopy {
		return "source only"
	}
	return "source and destination"
}

// PlanMove resolves the keys for moving imageID from folderName into
// destinationFolder. No backend call is made.
func (s *Service) PlanMove(folderName, imageID, destinationFolder string) (MovePlan, error) {
	if err := validateFolderName(destinationFolder); err != nil {
		return MovePlan{}, err
	}
	if destinationFolder == folderName {
		return MovePlan{}, invalidInput("image is already in folder %q", folderName)
	}
	src, err := ObjectKey(folderName, imageID)
	if err != nil {
		return MovePlan{}, err
	}
	dst, err := ObjectKey(destinationFolder, imageID)
	if err != nil {
		return MovePlan{}, err
	}
	return MovePlan{Source: src, Destination: dst}, nil
}

// CopyPhase copies the source object to the destination key.
func (s *Service) CopyPhase(ctx context.Context, plan MovePlan) error {
	s.logger.InfoContext(ctx, "copying image", "bucket", s.store.Bucket(), "source", plan.Source, "destination", plan.Destination)
	return s.store.CopyObject(ctx, plan.Source, plan.Destination)
}

// DeletePhase removes the source object.
func (s *Service) DeletePhase(ctx context.Context, plan MovePlan) error {
	s.logger.InfoContext(ctx, "deleting moved image source", "bucket", s.store.Bucket(), "key", plan.Source)
	return s.store.RemoveObject(ctx, plan.Source)
}

// Move runs the copy phase and then the delete phase. Nothing is rolled back
// when the delete fails; see MoveError.Stranded.
func (s *Service) Move(ctx context.Context, plan MovePlan) error {
	if err := s.CopyPhase(ctx, plan); err != nil {
		return &MoveError{Phase: PhaseCopy, Plan: plan, Err: err}
	}
	if err := s.DeletePhase(ctx, plan); err != nil {
		return &MoveError{Phase: PhaseDelete, Plan: plan, Err: err}
	}
	return nil
}
