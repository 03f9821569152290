package roadmap

import (
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var recordJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// RoadmapRecord is the nested plain record a Roadmap is persisted as.
// Value objects are rendered in their string form.
type RoadmapRecord struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Version     string            `json:"version"`
	Owner       string            `json:"owner"`
	Revision    uint64            `json:"revision"`
	Timeframes  []TimeframeRecord `json:"timeframes"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// TimeframeRecord is the persisted form of a Timeframe.
type TimeframeRecord struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Order       int                `json:"order"`
	Initiatives []InitiativeRecord `json:"initiatives"`
}

// InitiativeRecord is the persisted form of an Initiative.
type InitiativeRecord struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Priority    string       `json:"priority"`
	Items       []ItemRecord `json:"items"`
}

// ItemRecord is the persisted form of an Item.
type ItemRecord struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Status          string   `json:"status"`
	RelatedEntities []string `json:"relatedEntities"`
	Notes           string   `json:"notes"`
}

// NoteRecord is the persisted form of a Note.
type NoteRecord struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Category     string    `json:"category"`
	Priority     string    `json:"priority"`
	Timeline     string    `json:"timeline"`
	RelatedItems []string  `json:"relatedItems"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToRecord serializes the item. Pending events are not part of the record.
func (i Item) ToRecord() ItemRecord {
	return ItemRecord{
		ID:              i.id,
		Title:           i.title,
		Description:     i.description,
		Status:          i.status.String(),
		RelatedEntities: copyStrings(i.relatedEntities),
		Notes:           i.notes,
	}
}

// ItemFromRecord rebuilds an Item from its record.
func ItemFromRecord(rec ItemRecord) (Item, error) {
	status, err := ParseStatus(rec.Status)
	if err != nil {
		return Item{}, errors.Join(ErrInvalidRecord, err)
	}

	return Item{
		id:              rec.ID,
		title:           rec.Title,
		description:     rec.Description,
		status:          status,
		relatedEntities: copyStrings(rec.RelatedEntities),
		notes:           rec.Notes,
	}, nil
}

// ToRecord serializes the initiative including its items.
func (i Initiative) ToRecord() InitiativeRecord {
	items := make([]ItemRecord, 0, i.items.count())
	for _, item := range i.items.all() {
		items = append(items, item.ToRecord())
	}

	return InitiativeRecord{
		ID:          i.id,
		Title:       i.title,
		Description: i.description,
		Category:    i.category.String(),
		Priority:    i.priority.String(),
		Items:       items,
	}
}

// InitiativeFromRecord rebuilds an Initiative from its record.
func InitiativeFromRecord(rec InitiativeRecord) (Initiative, error) {
	category, err := ParseCategory(rec.Category)
	if err != nil {
		return Initiative{}, errors.Join(ErrInvalidRecord, err)
	}

	priority, err := ParsePriority(rec.Priority)
	if err != nil {
		return Initiative{}, errors.Join(ErrInvalidRecord, err)
	}

	items := make([]Item, 0, len(rec.Items))
	for _, itemRec := range rec.Items {
		item, itemErr := ItemFromRecord(itemRec)
		if itemErr != nil {
			return Initiative{}, itemErr
		}

		items = append(items, item)
	}

	return Initiative{
		id:          rec.ID,
		title:       rec.Title,
		description: rec.Description,
		category:    category,
		priority:    priority,
		items:       newItemCollection(items...),
	}, nil
}

// ToRecord serializes the timeframe including its initiatives.
func (t Timeframe) ToRecord() TimeframeRecord {
	initiatives := make([]InitiativeRecord, 0, t.initiatives.len())
	for _, initiative := range t.initiatives.values() {
		initiatives = append(initiatives, initiative.ToRecord())
	}

	return TimeframeRecord{
		ID:          t.id,
		Name:        t.name,
		Order:       t.order,
		Initiatives: initiatives,
	}
}

// TimeframeFromRecord rebuilds a Timeframe from its record.
func TimeframeFromRecord(rec TimeframeRecord) (Timeframe, error) {
	timeframe := Timeframe{
		id:    rec.ID,
		name:  rec.Name,
		order: rec.Order,
	}

	for _, initiativeRec := range rec.Initiatives {
		initiative, err := InitiativeFromRecord(initiativeRec)
		if err != nil {
			return Timeframe{}, err
		}

		timeframe.initiatives = timeframe.initiatives.with(initiative.ID(), initiative)
	}

	return timeframe, nil
}

// ToRecord serializes the whole aggregate. Timeframes keep insertion order so
// that ties in Order survive a round trip.
func (r Roadmap) ToRecord() RoadmapRecord {
	timeframes := make([]TimeframeRecord, 0, r.timeframes.len())
	for _, timeframe := range r.timeframes.values() {
		timeframes = append(timeframes, timeframe.ToRecord())
	}

	return RoadmapRecord{
		ID:          r.id,
		Title:       r.title,
		Description: r.description,
		Version:     r.version,
		Owner:       r.owner,
		Revision:    r.revision,
		Timeframes:  timeframes,
		CreatedAt:   r.createdAt,
		UpdatedAt:   r.updatedAt,
	}
}

// FromRecord rebuilds a Roadmap from its record. The result has no pending events.
func FromRecord(rec RoadmapRecord) (Roadmap, error) {
	r := Roadmap{
		id:          rec.ID,
		title:       rec.Title,
		description: rec.Description,
		version:     rec.Version,
		owner:       rec.Owner,
		revision:    rec.Revision,
		createdAt:   ToTimestamp(rec.CreatedAt),
		updatedAt:   ToTimestamp(rec.UpdatedAt),
	}

	for _, timeframeRec := range rec.Timeframes {
		timeframe, err := TimeframeFromRecord(timeframeRec)
		if err != nil {
			return Roadmap{}, err
		}

		r.timeframes = r.timeframes.with(timeframe.ID(), timeframe)
	}

	return r, nil
}

// ToRecord serializes the note.
func (n Note) ToRecord() NoteRecord {
	return NoteRecord{
		ID:           n.id,
		Title:        n.title,
		Content:      n.content,
		Category:     n.category.String(),
		Priority:     n.priority.String(),
		Timeline:     n.timeline,
		RelatedItems: copyStrings(n.relatedItems),
		CreatedAt:    n.createdAt,
		UpdatedAt:    n.updatedAt,
	}
}

// NoteFromRecord rebuilds a Note from its record.
func NoteFromRecord(rec NoteRecord) (Note, error) {
	category, err := ParseCategory(rec.Category)
	if err != nil {
		return Note{}, errors.Join(ErrInvalidRecord, err)
	}

	priority, err := ParsePriority(rec.Priority)
	if err != nil {
		return Note{}, errors.Join(ErrInvalidRecord, err)
	}

	return Note{
		id:           rec.ID,
		title:        rec.Title,
		content:      rec.Content,
		category:     category,
		priority:     priority,
		timeline:     rec.Timeline,
		relatedItems: copyStrings(rec.RelatedItems),
		createdAt:    ToTimestamp(rec.CreatedAt),
		updatedAt:    ToTimestamp(rec.UpdatedAt),
	}, nil
}

// MarshalRoadmap encodes the aggregate as a JSON document.
func MarshalRoadmap(r Roadmap) ([]byte, error) {
	return recordJSON.Marshal(r.ToRecord())
}

// UnmarshalRoadmap decodes a JSON document produced by MarshalRoadmap.
func UnmarshalRoadmap(data []byte) (Roadmap, error) {
	rec := RoadmapRecord{}
	if err := recordJSON.Unmarshal(data, &rec); err != nil {
		return Roadmap{}, errors.Join(ErrInvalidRecord, err)
	}

	return FromRecord(rec)
}

// MarshalNote encodes a note as a JSON document.
func MarshalNote(n Note) ([]byte, error) {
	return recordJSON.Marshal(n.ToRecord())
}

// UnmarshalNote decodes a JSON document produced by MarshalNote.
func UnmarshalNote(data []byte) (Note, error) {
	rec := NoteRecord{}
	if err := recordJSON.Unmarshal(data, &rec); err != nil {
		return Note{}, errors.Join(ErrInvalidRecord, err)
	}

	return NoteFromRecord(rec)
}
