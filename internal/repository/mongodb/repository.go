package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gestock/internal/domain/models"
)

// Store defines the persistence operations needed by the inventory service.
type Store interface {
	ListArticles(ctx context.Context) ([]models.Article, error)
	InsertArticle(ctx context.Context, article models.Article) error
	UpdateArticle(ctx context.Context, article models.Article) (bool, error)
	DeleteArticle(ctx context.Context, id int) (bool, error)
	AppendSale(ctx context.Context, record models.SaleRecord) error
	ListSales(ctx context.Context, start, end *time.Time) ([]models.SaleRecord, error)
	ReplaceArticles(ctx context.Context, articles []models.Article) error
	ReplaceSales(ctx context.Context, records []models.SaleRecord) error
}

// MongoDBRepository implements Store on top of the official Mongo driver.
type MongoDBRepository struct {
	client       *mongo.Client
	dbName       string
	articlesColl string
	salesColl    string
}

// articleDoc is the stored shape of an Article. Prices are persisted as
// float64; decimal conversion happens at this boundary only.
type articleDoc struct {
	ID       int     `bson:"id"`
	Name     string  `bson:"nom_article"`
	Stock    int     `bson:"stock"`
	Price    float64 `bson:"prix"`
	MinStock int     `bson:"min_stock"`
}

type saleDoc struct {
	Date       time.Time `bson:"date"`
	Reference  string    `bson:"reference"`
	Name       string    `bson:"nom_article"`
	Quantity   int       `bson:"quantite"`
	TotalPrice float64   `bson:"prix_total"`
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:       client,
		dbName:       dbName,
		articlesColl: "articles",
		salesColl:    "sales_history",
	}, nil
}

func (r *MongoDBRepository) articles() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.articlesColl)
}

func (r *MongoDBRepository) sales() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.salesColl)
}

// ListArticles returns every article sorted by id.
func (r *MongoDBRepository) ListArticles(ctx context.Context) ([]models.Article, error) {
	cursor, err := r.articles().Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []articleDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode articles: %w", err)
	}

	articles := make([]models.Article, 0, len(docs))
	for _, doc := range docs {
		articles = append(articles, doc.toModel())
	}
	return articles, nil
}

// InsertArticle stores a new article document.
func (r *MongoDBRepository) InsertArticle(ctx context.Context, article models.Article) error {
	if _, err := r.articles().InsertOne(ctx, fromArticle(article)); err != nil {
		return fmt.Errorf("failed to insert article: %w", err)
	}
	return nil
}

// UpdateArticle replaces the document matching the article id wholesale and
// reports whether a matching document existed.
func (r *MongoDBRepository) UpdateArticle(ctx context.Context, article models.Article) (bool, error) {
	res, err := r.articles().ReplaceOne(ctx, bson.M{"id": article.ID}, fromArticle(article))
	if err != nil {
		return false, fmt.Errorf("failed to update article %d: %w", article.ID, err)
	}
	return res.MatchedCount > 0, nil
}

// DeleteArticle removes the article with the given id, reporting whether it existed.
func (r *MongoDBRepository) DeleteArticle(ctx context.Context, id int) (bool, error) {
	res, err := r.articles().DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete article %d: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}

// AppendSale records a completed sale in the history collection.
func (r *MongoDBRepository) AppendSale(ctx context.Context, record models.SaleRecord) error {
	if _, err := r.sales().InsertOne(ctx, fromSale(record)); err != nil {
		return fmt.Errorf("failed to insert sale record: %w", err)
	}
	return nil
}

// ListSales returns sale records, most recent first, optionally restricted to
// an inclusive date range.
func (r *MongoDBRepository) ListSales(ctx context.Context, start, end *time.Time) ([]models.SaleRecord, error) {
	filter := bson.M{}
	bounds := bson.M{}
	if start != nil {
		bounds["$gte"] = *start
	}
	if end != nil {
		bounds["$lte"] = *end
	}
	if len(bounds) > 0 {
		filter["date"] = bounds
	}

	cursor, err := r.sales().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []saleDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode sales: %w", err)
	}

	records := make([]models.SaleRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, doc.toModel())
	}
	return records, nil
}

// ReplaceArticles swaps the whole articles collection for the provided set.
// Used by the cloud restore path.
func (r *MongoDBRepository) ReplaceArticles(ctx context.Context, articles []models.Article) error {
	if err := r.articles().Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop articles: %w", err)
	}
	if len(articles) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(articles))
	for _, a := range articles {
		docs = append(docs, fromArticle(a))
	}
	if _, err := r.articles().InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to reinsert articles: %w", err)
	}
	return nil
}

// ReplaceSales swaps the whole history collection for the provided set.
func (r *MongoDBRepository) ReplaceSales(ctx context.Context, records []models.SaleRecord) error {
	if err := r.sales().Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop sales history: %w", err)
	}
	if len(records) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(records))
	for _, rec := range records {
		docs = append(docs, fromSale(rec))
	}
	if _, err := r.sales().InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to reinsert sales history: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func fromArticle(a models.Article) articleDoc {
	return articleDoc{
		ID:       a.ID,
		Name:     a.Name,
		Stock:    a.Stock,
		Price:    a.UnitPrice.InexactFloat64(),
		MinStock: a.MinStock,
	}
}

func (d articleDoc) toModel() models.Article {
	return models.Article{
		ID:        d.ID,
		Name:      d.Name,
		Stock:     d.Stock,
		UnitPrice: decimal.NewFromFloat(d.Price),
		MinStock:  d.MinStock,
	}
}

func fromSale(r models.SaleRecord) saleDoc {
	return saleDoc{
		Date:       r.Date,
		Reference:  r.Reference,
		Name:       r.ArticleName,
		Quantity:   r.Quantity,
		TotalPrice: r.TotalPrice.InexactFloat64(),
	}
}

func (d saleDoc) toModel() models.SaleRecord {
	return models.SaleRecord{
		Date:        d.Date,
		Reference:   d.Reference,
		ArticleName: d.Name,
		Quantity:    d.Quantity,
		TotalPrice:  decimal.NewFromFloat(d.TotalPrice),
	}
}
