package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
)

const empresaCollection = "empresas"

// EmpresaRepositoryMongo persists companies. The physical store is resolved
// per operation from the request identity; the cnpj unique index exists on
// both stores, so the same CNPJ can live in each without collision.
type EmpresaRepositoryMongo struct {
	router *StoreRouter
}

func NewEmpresaRepository(router *StoreRouter) *EmpresaRepositoryMongo {
	return &EmpresaRepositoryMongo{router: router}
}

// EnsureEmpresaIndexes creates the unique cnpj index on both stores. Called
// once at startup.
func EnsureEmpresaIndexes(ctx context.Context, stores *Stores) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "cnpj", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, db := range []*mongo.Database{stores.Primary, stores.Secondary} {
		if _, err := db.Collection(empresaCollection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("ensure cnpj index on %s: %w", db.Name(), err)
		}
	}
	return nil
}

type empresaDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Nome      string             `bson:"nome"`
	CNPJ      string             `bson:"cnpj"`
	Tipo      []string           `bson:"tipo"`
	Licitacao bool               `bson:"licitacao"`
	Emendas   []string           `bson:"emendas"`
}

func (r *EmpresaRepositoryMongo) coll(ctx context.Context) *mongo.Collection {
	return r.router.Database(ctx, domain.KindEmpresa).Collection(empresaCollection)
}

func (r *EmpresaRepositoryMongo) Create(ctx context.Context, e *domain.Empresa) (*domain.Empresa, error) {
	doc := empresaDoc{
		Nome:      e.Nome,
		CNPJ:      e.CNPJ,
		Tipo:      e.Tipo,
		Licitacao: e.Licitacao,
		Emendas:   e.Emendas,
	}

	res, err := r.coll(ctx).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmpresaExists
		}
		return nil, fmt.Errorf("insert empresa: %w", err)
	}

	created := *e
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *EmpresaRepositoryMongo) FindByID(ctx context.Context, id string) (*domain.Empresa, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEmpresaNotFound
	}

	var doc empresaDoc
	if err := r.coll(ctx).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrEmpresaNotFound
		}
		return nil, fmt.Errorf("find empresa: %w", err)
	}
	return empresaFromDoc(&doc), nil
}

func (r *EmpresaRepositoryMongo) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Empresa, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}

	result := make(map[string]*domain.Empresa, len(oids))
	if len(oids) == 0 {
		return result, nil
	}

	cur, err := r.coll(ctx).Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find empresas: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc empresaDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode empresa: %w", err)
		}
		e := empresaFromDoc(&doc)
		result[e.ID] = e
	}
	return result, cur.Err()
}

func (r *EmpresaRepositoryMongo) List(ctx context.Context) ([]*domain.Empresa, error) {
	opts := options.Find().SetSort(bson.D{{Key: "nome", Value: 1}})
	cur, err := r.coll(ctx).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	defer cur.Close(ctx)

	empresas := make([]*domain.Empresa, 0)
	for cur.Next(ctx) {
		var doc empresaDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode empresa: %w", err)
		}
		empresas = append(empresas, empresaFromDoc(&doc))
	}
	return empresas, cur.Err()
}

func (r *EmpresaRepositoryMongo) Update(ctx context.Context, e *domain.Empresa) error {
	oid, err := primitive.ObjectIDFromHex(e.ID)
	if err != nil {
		return domain.ErrEmpresaNotFound
	}

	update := bson.M{"$set": bson.M{
		"nome":      e.Nome,
		"cnpj":      e.CNPJ,
		"tipo":      e.Tipo,
		"licitacao": e.Licitacao,
		"emendas":   e.Emendas,
	}}

	res, err := r.coll(ctx).UpdateByID(ctx, oid, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmpresaExists
		}
		return fmt.Errorf("update empresa: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEmpresaNotFound
	}
	return nil
}

func (r *EmpresaRepositoryMongo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEmpresaNotFound
	}

	res, err := r.coll(ctx).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete empresa: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEmpresaNotFound
	}
	return nil
}

func empresaFromDoc(doc *empresaDoc) *domain.Empresa {
	e := &domain.Empresa{
		ID:        doc.ID.Hex(),
		Nome:      doc.Nome,
		CNPJ:      doc.CNPJ,
		Tipo:      doc.Tipo,
		Licitacao: doc.Licitacao,
		Emendas:   doc.Emendas,
	}
	if e.Tipo == nil {
		e.Tipo = []string{}
	}
	if e.Emendas == nil {
		e.Emendas = []string{}
	}
	return e
}
