package tags

// Object types a tag can be attached to.
const (
	ObjectTypeProduct    = "product"
	ObjectTypeCollection = "collection"
)

type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Label string `gorm:"type:varchar(255);not null;uniqueIndex;column:label" json:"label"`
}

func (Tag) TableName() string { return "tag" }

// TaggedItem is a generic link from a tag to any (object_type, object_id) pair.
type TaggedItem struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	TagID      uint   `gorm:"not null;column:tag_id;uniqueIndex:idx_tagged_item_unique,priority:3" json:"tag_id"`
	Tag        *Tag   `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"-"`
	ObjectType string `gorm:"type:varchar(64);not null;column:object_type;uniqueIndex:idx_tagged_item_unique,priority:1" json:"object_type"`
	ObjectID   uint   `gorm:"not null;column:object_id;uniqueIndex:idx_tagged_item_unique,priority:2" json:"object_id"`
}

func (TaggedItem) TableName() string { return "tagged_item" }
