package models

// NoteModel is a rich-text note. Content holds the serialized editor document.
type NoteModel struct {
	Base
	UserID  string     `json:"user_id" gorm:"type:char(36);index;not null"`
	Title   *string    `json:"title"   gorm:"size:255"`
	Content string     `json:"content" gorm:"type:longtext"`
	Tags    []TagModel `json:"tags"    gorm:"many2many:note_tags;joinForeignKey:NoteID;joinReferences:TagID;constraint:OnDelete:CASCADE"`
}

func (NoteModel) TableName() string { return "notes" }

// TagModel is a global tag shared by every user's notes.
type TagModel struct {
	Base
	Name string `json:"name" gorm:"size:191;uniqueIndex;not null"`
}

func (TagModel) TableName() string { return "tags" }

// NoteTagTable is the association table between notes and tags.
// (note_id, tag_id) is its composite primary key.
const NoteTagTable = "note_tags"

// NoteTagModel maps a row of NoteTagTable. The table itself is created by
// the many2many migration on NoteModel.Tags.
type NoteTagModel struct {
	NoteID string `json:"note_id" gorm:"type:char(36);primaryKey"`
	TagID  string `json:"tag_id"  gorm:"type:char(36);primaryKey"`
}

func (NoteTagModel) TableName() string { return NoteTagTable }
