package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskLeadCRMSync = "leads.crm_sync"

type LeadCRMSyncPayload struct {
	LeadID string `json:"leadId"`
}

func NewLeadCRMSyncTask(payload LeadCRMSyncPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadCRMSync, data), nil
}

func ParseLeadCRMSyncPayload(task *asynq.Task) (LeadCRMSyncPayload, error) {
	var payload LeadCRMSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadCRMSyncPayload{}, err
	}
	return payload, nil
}
