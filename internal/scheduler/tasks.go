package scheduler

import (
	"encoding/json"
	"fmt"

	"storefront_backend/internal/orders/commands"

	"github.com/hibiken/asynq"
)

const TaskOrderInsert = commands.CommandInsertOrder

type OrderInsertPayload struct {
	ProductNames []string `json:"productNames"`
}

func NewOrderInsertTask(payload OrderInsertPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderInsert, data), nil
}

func ParseOrderInsertPayload(task *asynq.Task) (OrderInsertPayload, error) {
	var payload OrderInsertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return OrderInsertPayload{}, err
	}
	return payload, nil
}

// newCommandTask converts a command into its asynq task.
func newCommandTask(cmd commands.Command) (*asynq.Task, error) {
	switch c := cmd.(type) {
	case commands.InsertOrder:
		return NewOrderInsertTask(OrderInsertPayload{ProductNames: c.ProductNames})
	default:
		return nil, fmt.Errorf("unsupported command %q", cmd.CommandName())
	}
}
