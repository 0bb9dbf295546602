package consts

// Collection names
const (
	// CollectionNameExhibitChunks exhibit text chunk collection
	CollectionNameExhibitChunks = "exhibit_chunks"
)

// Field names
const (
	FieldNameID          = "id"
	FieldNameContent     = "content"
	FieldNameExhibitID   = "exhibit_id"
	FieldNameExhibitName = "exhibit_name"
	FieldNameContentType = "content_type"
	FieldNameChunkIndex  = "chunk_index"
	FieldNameVector      = "vector"
)

var (
	// SearchFields fields returned by vector search
	SearchFields = []string{
		FieldNameID,
		FieldNameContent,
		FieldNameExhibitID,
		FieldNameExhibitName,
		FieldNameContentType,
		FieldNameChunkIndex,
	}
)
