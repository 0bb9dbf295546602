package dao

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"litigator/config"
	"litigator/internal/model"
	"litigator/pkgs/consts"
)

type MilvusDao interface {
	EnsureCollection(ctx context.Context) error
	SaveChunks(ctx context.Context, chunks []model.Chunk) error
	Search(ctx context.Context, vector []float32, topK int) ([]model.Chunk, error)
	DeleteChunksByExhibit(ctx context.Context, exhibitIDs []string) error
}

type milvusDao struct {
	mv client.Client
}

func NewMilvusDao(milvus client.Client) MilvusDao {
	return &milvusDao{mv: milvus}
}

// EnsureCollection creates the exhibit chunk collection and its vector index
// on first run.
func (m *milvusDao) EnsureCollection(ctx context.Context) error {
	cfg := config.GetConfig().Milvus
	name := consts.CollectionNameExhibitChunks

	exists, err := m.mv.HasCollection(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if !exists {
		schema := entity.NewSchema().WithName(name).
			WithField(entity.NewField().WithName(consts.FieldNameID).WithDataType(entity.FieldTypeVarChar).WithIsPrimaryKey(true).WithMaxLength(64)).
			WithField(entity.NewField().WithName(consts.FieldNameContent).WithDataType(entity.FieldTypeVarChar).WithMaxLength(65535)).
			WithField(entity.NewField().WithName(consts.FieldNameExhibitID).WithDataType(entity.FieldTypeVarChar).WithMaxLength(64)).
			WithField(entity.NewField().WithName(consts.FieldNameExhibitName).WithDataType(entity.FieldTypeVarChar).WithMaxLength(256)).
			WithField(entity.NewField().WithName(consts.FieldNameContentType).WithDataType(entity.FieldTypeVarChar).WithMaxLength(16)).
			WithField(entity.NewField().WithName(consts.FieldNameChunkIndex).WithDataType(entity.FieldTypeInt32)).
			WithField(entity.NewField().WithName(consts.FieldNameVector).WithDataType(entity.FieldTypeFloatVector).WithDim(int64(cfg.VectorDimension)))

		if err := m.mv.CreateCollection(ctx, schema, 1); err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}

		idx, err := cfg.GetMilvusIndex()
		if err != nil {
			return fmt.Errorf("failed to build index config: %w", err)
		}
		if err := m.mv.CreateIndex(ctx, name, consts.FieldNameVector, idx, false); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	if err := m.mv.LoadCollection(ctx, name, false); err != nil {
		return fmt.Errorf("failed to load collection: %w", err)
	}
	return nil
}

func (m *milvusDao) SaveChunks(ctx context.Context, chunks []model.Chunk) error {
	if len(chunks) == 0 {
		return fmt.Errorf("no chunks to insert")
	}

	var ids []string
	var contents []string
	var exhibitIDs []string
	var exhibitNames []string
	var contentTypes []string
	var chunkIndices []int32
	var vectors [][]float32

	for _, chunk := range chunks {
		if len(chunk.Content) == 0 || len(chunk.Embeddings) == 0 {
			continue
		}
		name := chunk.ExhibitName
		if len(name) > 250 {
			name = name[:250]
		}
		ids = append(ids, chunk.ID)
		contents = append(contents, chunk.Content)
		exhibitIDs = append(exhibitIDs, chunk.ExhibitID)
		exhibitNames = append(exhibitNames, name)
		contentTypes = append(contentTypes, chunk.ContentType)
		chunkIndices = append(chunkIndices, int32(chunk.Index))
		vectors = append(vectors, chunk.Embeddings)
	}

	dim := config.GetConfig().Milvus.VectorDimension
	idColumn := entity.NewColumnVarChar(consts.FieldNameID, ids)
	contentColumn := entity.NewColumnVarChar(consts.FieldNameContent, contents)
	exhibitIDColumn := entity.NewColumnVarChar(consts.FieldNameExhibitID, exhibitIDs)
	exhibitNameColumn := entity.NewColumnVarChar(consts.FieldNameExhibitName, exhibitNames)
	contentTypeColumn := entity.NewColumnVarChar(consts.FieldNameContentType, contentTypes)
	indexColumn := entity.NewColumnInt32(consts.FieldNameChunkIndex, chunkIndices)
	vectorColumn := entity.NewColumnFloatVector(consts.FieldNameVector, dim, vectors)

	var lastErr error
	for i := 0; i < 3; i++ {
		_, err := m.mv.Insert(
			ctx,
			consts.CollectionNameExhibitChunks,
			"",
			idColumn,
			contentColumn,
			exhibitIDColumn,
			exhibitNameColumn,
			contentTypeColumn,
			indexColumn,
			vectorColumn,
		)
		if err == nil {
			return nil
		}
		lastErr = err
		log.Printf("[Milvus] insert failed (%d/3): %v", i+1, err)
		time.Sleep(1 * time.Second)
	}

	return fmt.Errorf("failed to insert chunks after 3 retries: %w", lastErr)
}

func (m *milvusDao) Search(ctx context.Context, vector []float32, topK int) ([]model.Chunk, error) {
	cfg := config.GetConfig().Milvus

	sp, _ := entity.NewIndexIvfFlatSearchParam(cfg.Nprobe)
	searchResult, err := m.mv.Search(
		ctx,
		consts.CollectionNameExhibitChunks,
		[]string{},
		"",
		consts.SearchFields,
		[]entity.Vector{entity.FloatVector(vector)},
		consts.FieldNameVector,
		cfg.GetMetricType(),
		topK,
		sp,
	)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	return m.parseSearchResults(searchResult)
}

func (m *milvusDao) DeleteChunksByExhibit(ctx context.Context, exhibitIDs []string) error {
	expr := fmt.Sprintf("%s in [\"%s\"]", consts.FieldNameExhibitID, strings.Join(exhibitIDs, "\",\""))
	if err := m.mv.Delete(ctx, consts.CollectionNameExhibitChunks, "", expr); err != nil {
		return fmt.Errorf("failed to delete chunks: %w", err)
	}
	return nil
}

func (m *milvusDao) parseSearchResults(searchResult []client.SearchResult) ([]model.Chunk, error) {
	var chunks []model.Chunk

	for _, result := range searchResult {
		idCol, ok := result.IDs.(*entity.ColumnVarChar)
		if !ok {
			return nil, fmt.Errorf("unexpected type for ID column: %T", result.IDs)
		}
		contentCol, ok := result.Fields.GetColumn(consts.FieldNameContent).(*entity.ColumnVarChar)
		if !ok {
			return nil, fmt.Errorf("unexpected type for content column")
		}
		exhibitIDCol, ok := result.Fields.GetColumn(consts.FieldNameExhibitID).(*entity.ColumnVarChar)
		if !ok {
			return nil, fmt.Errorf("unexpected type for exhibit ID column")
		}
		exhibitNameCol, ok := result.Fields.GetColumn(consts.FieldNameExhibitName).(*entity.ColumnVarChar)
		if !ok {
			return nil, fmt.Errorf("unexpected type for exhibit name column")
		}
		contentTypeCol, ok := result.Fields.GetColumn(consts.FieldNameContentType).(*entity.ColumnVarChar)
		if !ok {
			return nil, fmt.Errorf("unexpected type for content type column")
		}
		indexCol, ok := result.Fields.GetColumn(consts.FieldNameChunkIndex).(*entity.ColumnInt32)
		if !ok {
			return nil, fmt.Errorf("unexpected type for chunk index column")
		}

		for i := 0; i < idCol.Len(); i++ {
			content, err := contentCol.GetAsString(i)
			if err != nil {
				return nil, fmt.Errorf("failed to read content: %w", err)
			}
			exhibitID, err := exhibitIDCol.GetAsString(i)
			if err != nil {
				return nil, fmt.Errorf("failed to read exhibit id: %w", err)
			}
			exhibitName, err := exhibitNameCol.GetAsString(i)
			if err != nil {
				return nil, fmt.Errorf("failed to read exhibit name: %w", err)
			}
			contentType, err := contentTypeCol.GetAsString(i)
			if err != nil {
				return nil, fmt.Errorf("failed to read content type: %w", err)
			}

			chunks = append(chunks, model.Chunk{
				ID:          idCol.Data()[i],
				Content:     content,
				ExhibitID:   exhibitID,
				ExhibitName: exhibitName,
				ContentType: contentType,
				Index:       int(indexCol.Data()[i]),
				Score:       result.Scores[i],
			})
		}
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Score > chunks[j].Score
	})

	return chunks, nil
}
