package service

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/cloudwego/eino-ext/components/document/loader/url"
	"github.com/cloudwego/eino-ext/components/document/transformer/splitter/recursive"
	"github.com/cloudwego/eino/components/document"
	eino_embedding "github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"litigator/config"
	"litigator/internal/component/parser/pdf"
	"litigator/internal/dao"
	"litigator/internal/model"
	"litigator/internal/storage"
	"litigator/internal/utils"
)

type EvidenceService interface {
	Upload(ctx context.Context, factID *uint, filename, mimeType string, data []byte) (*model.Exhibit, error)
	Process(ctx context.Context, exhibitID string) error
	Get(ctx context.Context, exhibitID string) (*model.Exhibit, error)
	Page(ctx context.Context, page, size int) ([]*model.Exhibit, int64, error)
	ListByFactID(ctx context.Context, factID uint) ([]*model.Exhibit, error)
	Delete(ctx context.Context, exhibitID string) error
	FileURL(ctx context.Context, exhibitID string) (string, error)
}

type evidenceService struct {
	evidenceDao dao.EvidenceDao
	milvusDao   dao.MilvusDao
	driver      storage.Driver
	embedder    eino_embedding.Embedder
}

func NewEvidenceService(evidenceDao dao.EvidenceDao, milvusDao dao.MilvusDao, driver storage.Driver, embedder eino_embedding.Embedder) EvidenceService {
	return &evidenceService{
		evidenceDao: evidenceDao,
		milvusDao:   milvusDao,
		driver:      driver,
		embedder:    embedder,
	}
}

// Upload stores the raw file and records the exhibit as pending. Indexing is
// a separate step so large files do not hold the upload request open.
func (s *evidenceService) Upload(ctx context.Context, factID *uint, filename, mimeType string, data []byte) (*model.Exhibit, error) {
	exhibit := &model.Exhibit{
		ID:        uuid.NewString(),
		FactID:    factID,
		Filename:  filename,
		MIMEType:  mimeType,
		SizeBytes: int64(len(data)),
		Status:    model.ExhibitStatusPending,
	}
	exhibit.StorageKey = exhibit.ID + filepath.Ext(filename)

	if err := s.driver.Save(ctx, exhibit.StorageKey, data); err != nil {
		return nil, fmt.Errorf("failed to store exhibit file: %w", err)
	}
	if err := s.evidenceDao.Create(ctx, exhibit); err != nil {
		return nil, err
	}
	return exhibit, nil
}

// Process extracts the exhibit's text, splits it, embeds every chunk and
// writes the vectors to Milvus.
func (s *evidenceService) Process(ctx context.Context, exhibitID string) error {
	exhibit, err := s.evidenceDao.GetByID(ctx, exhibitID)
	if err != nil {
		return err
	}

	exhibit.Status = model.ExhibitStatusProcessing
	if err := s.evidenceDao.Update(ctx, exhibit); err != nil {
		return err
	}

	if err := s.index(ctx, exhibit); err != nil {
		exhibit.Status = model.ExhibitStatusFailed
		if updateErr := s.evidenceDao.Update(ctx, exhibit); updateErr != nil {
			log.Printf("[Evidence] failed to mark exhibit %s failed: %v", exhibit.ID, updateErr)
		}
		return err
	}

	exhibit.Status = model.ExhibitStatusIndexed
	return s.evidenceDao.Update(ctx, exhibit)
}

func (s *evidenceService) index(ctx context.Context, exhibit *model.Exhibit) error {
	docs, err := s.load(ctx, exhibit)
	if err != nil {
		return err
	}

	ragCfg := config.GetConfig().RAG
	splitter, err := recursive.NewSplitter(ctx, &recursive.Config{
		ChunkSize:   ragCfg.ChunkSize,
		OverlapSize: ragCfg.OverlapSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create splitter: %w", err)
	}
	texts, err := splitter.Transform(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to split exhibit text: %w", err)
	}
	if len(texts) == 0 {
		return fmt.Errorf("exhibit %s produced no text chunks", exhibit.ID)
	}

	contents := make([]string, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, text.Content)
	}
	vectors64, err := s.embedder.EmbedStrings(ctx, contents)
	if err != nil {
		return fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(vectors64) != len(contents) {
		return fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors64), len(contents))
	}
	vectors := utils.ConvertFloat64ToFloat32Embeddings(vectors64)

	chunks := make([]model.Chunk, 0, len(texts))
	for i, text := range texts {
		chunks = append(chunks, model.Chunk{
			ID:          uuid.NewString(),
			Content:     text.Content,
			ExhibitID:   exhibit.ID,
			ExhibitName: exhibit.Filename,
			ContentType: "text",
			Index:       i,
			Embeddings:  vectors[i],
		})
	}

	if err := s.milvusDao.SaveChunks(ctx, chunks); err != nil {
		return fmt.Errorf("failed to index chunks: %w", err)
	}
	return nil
}

// load picks the extraction path by MIME type: PDFs go through docconv,
// everything else through the URL loader against the storage driver.
func (s *evidenceService) load(ctx context.Context, exhibit *model.Exhibit) ([]*schema.Document, error) {
	if exhibit.MIMEType == "application/pdf" {
		reader, err := s.driver.Open(ctx, exhibit.StorageKey)
		if err != nil {
			return nil, err
		}
		defer reader.Close()

		parser, err := pdf.NewDocconvPDFParser(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create pdf parser: %w", err)
		}
		docs, err := parser.Parse(ctx, reader)
		if err != nil {
			return nil, err
		}
		for _, d := range docs {
			d.ID = exhibit.Filename
		}
		return docs, nil
	}

	fileURL, err := s.driver.GetURL(exhibit.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve exhibit url: %w", err)
	}
	loader, err := url.NewLoader(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create loader: %w", err)
	}
	docs, err := loader.Load(ctx, document.Source{URI: fileURL})
	if err != nil {
		return nil, fmt.Errorf("failed to load exhibit: %w", err)
	}
	for _, d := range docs {
		d.ID = exhibit.Filename
	}
	return docs, nil
}

func (s *evidenceService) Get(ctx context.Context, exhibitID string) (*model.Exhibit, error) {
	return s.evidenceDao.GetByID(ctx, exhibitID)
}

func (s *evidenceService) Page(ctx context.Context, page, size int) ([]*model.Exhibit, int64, error) {
	return s.evidenceDao.List(ctx, page, size)
}

func (s *evidenceService) ListByFactID(ctx context.Context, factID uint) ([]*model.Exhibit, error) {
	return s.evidenceDao.ListByFactID(ctx, factID)
}

func (s *evidenceService) Delete(ctx context.Context, exhibitID string) error {
	exhibit, err := s.evidenceDao.GetByID(ctx, exhibitID)
	if err != nil {
		return err
	}

	if err := s.milvusDao.DeleteChunksByExhibit(ctx, []string{exhibit.ID}); err != nil {
		log.Printf("[Evidence] failed to delete chunks for %s: %v", exhibit.ID, err)
	}
	if err := s.driver.Delete(ctx, exhibit.StorageKey); err != nil {
		log.Printf("[Evidence] failed to delete file for %s: %v", exhibit.ID, err)
	}
	return s.evidenceDao.Delete(ctx, exhibit.ID)
}

func (s *evidenceService) FileURL(ctx context.Context, exhibitID string) (string, error) {
	exhibit, err := s.evidenceDao.GetByID(ctx, exhibitID)
	if err != nil {
		return "", err
	}
	return s.driver.GetURL(exhibit.StorageKey)
}
