package card

import (
	"fmt"

	"backend/internal/app/activity"

	"go.uber.org/zap"
)

// AssigneeSource is the post-commit read the fan-out uses; after a
// cross-board move it only sees assignments that survived the migration
// filter.
type AssigneeSource interface {
	ListAssigneeIDs(cardID string) ([]uint64, error)
}

// fanout runs strictly after the move transaction commits. Every step is
// best-effort: a failed side effect is logged and skipped, never allowed to
// fail or roll back the already-committed move.
type fanout struct {
	activities ActivityLogger
	notifier   Notifier
	assignees  AssigneeSource
	bus        EventPublisher
	logger     *zap.SugaredLogger
}

func (f *fanout) afterMove(res *MoveResult, actorID uint64) {
	if res.CrossedList() {
		text := f.describeMove(res)
		entry, err := f.activities.LogAction(res.Card.ID, &actorID, activity.CategoryMove, text)
		if err != nil {
			f.logger.Errorw("Failed to log move activity",
				"card_id", res.Card.ID, "actor_id", actorID, "error", err)
		} else {
			ids, err := f.assignees.ListAssigneeIDs(res.Card.ID)
			if err != nil {
				f.logger.Warnw("Failed to list assignees for notification",
					"card_id", res.Card.ID, "error", err)
			} else {
				f.notifier.NotifyUsers(entry.ID, activity.CategoryMove, actorID, ids)
			}
		}
	}

	event := map[string]interface{}{
		"board_id":        res.SourceBoardID,
		"card_id":         res.Card.ID,
		"source_list_id":  res.SourceListID,
		"target_list_id":  res.TargetListID,
		"target_board_id": res.TargetBoardID,
		"position":        res.Card.Position,
	}
	f.bus.Publish("card_moved", event)

	if res.CrossedBoard() {
		destEvent := make(map[string]interface{}, len(event))
		for k, v := range event {
			destEvent[k] = v
		}
		destEvent["board_id"] = res.TargetBoardID
		f.bus.Publish("card_moved", destEvent)
	}
}

func (f *fanout) afterAssignment(c *Card, boardID, userID, actorID uint64) {
	text := fmt.Sprintf("assigned user %d to this card", userID)
	entry, err := f.activities.LogAction(c.ID, &actorID, activity.CategoryAssignment, text)
	if err != nil {
		f.logger.Errorw("Failed to log assignment activity",
			"card_id", c.ID, "actor_id", actorID, "error", err)
	} else {
		f.notifier.NotifyUsers(entry.ID, activity.CategoryAssignment, actorID, []uint64{userID})
	}

	f.bus.Publish("card_assigned", map[string]interface{}{
		"board_id": boardID,
		"card_id":  c.ID,
		"user_id":  userID,
	})
}

func (f *fanout) describeMove(res *MoveResult) string {
	if res.CrossedBoard() {
		return fmt.Sprintf("moved this card from %q on board %q to %q on board %q",
			res.SourceListTitle, res.SourceBoardName, res.TargetListTitle, res.TargetBoardName)
	}
	return fmt.Sprintf("moved this card from %q to %q", res.SourceListTitle, res.TargetListTitle)
}
