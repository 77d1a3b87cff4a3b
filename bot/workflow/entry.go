package workflow

// Entry kind constants. A flow started from another screen receives a
// payload naming the record it should act on.
const (
	EntryCrop    = "crop"
	EntryPayment = "payment"
	EntryHarvest = "harvest"
)

// EntryData carries the record a workflow was started for.
type EntryData struct {
	Kind string `json:"kind" bson:"kind"`
	ID   string `json:"id" bson:"id"`
}

func (e *EntryData) IsEmpty() bool {
	return e == nil || (e.Kind == "" && e.ID == "")
}
