package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
	"github.com/gestaoverbas/registro-system/internal/core/ports"
)

const transacaoCollection = "transacoes"

// TransacaoRepositoryMongo persists transactions. Valor is stored as a native
// Decimal128 so no precision is lost on amounts up to the trillions.
type TransacaoRepositoryMongo struct {
	router *StoreRouter
}

func NewTransacaoRepository(router *StoreRouter) *TransacaoRepositoryMongo {
	return &TransacaoRepositoryMongo{router: router}
}

type transacaoDoc struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty"`
	EmpresaID      string               `bson:"empresa_id"`
	Tipo           string               `bson:"tipo"`
	Status         string               `bson:"status"`
	NF             string               `bson:"nf,omitempty"`
	Descricao      string               `bson:"descricao,omitempty"`
	Valor          primitive.Decimal128 `bson:"valor"`
	Data           time.Time            `bson:"data"`
	DataEntrada    time.Time            `bson:"data_entrada"`
	DataSaida      *time.Time           `bson:"data_saida,omitempty"`
	TipoMaterial   string               `bson:"tipo_material,omitempty"`
	DestinoEntrada string               `bson:"destino_entrada,omitempty"`
	EmendaOrigem   string               `bson:"emenda_origem,omitempty"`
}

func (r *TransacaoRepositoryMongo) coll(ctx context.Context) *mongo.Collection {
	return r.router.Database(ctx, domain.KindTransacao).Collection(transacaoCollection)
}

func (r *TransacaoRepositoryMongo) Create(ctx context.Context, t *domain.Transacao) (*domain.Transacao, error) {
	res, err := r.coll(ctx).InsertOne(ctx, transacaoToDoc(t))
	if err != nil {
		return nil, fmt.Errorf("insert transacao: %w", err)
	}

	created := *t
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *TransacaoRepositoryMongo) FindByID(ctx context.Context, id string) (*domain.Transacao, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTransacaoNotFound
	}

	var doc transacaoDoc
	if err := r.coll(ctx).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTransacaoNotFound
		}
		return nil, fmt.Errorf("find transacao: %w", err)
	}
	return transacaoFromDoc(&doc), nil
}

func (r *TransacaoRepositoryMongo) List(ctx context.Context, filter ports.ListTransacoesFilter) ([]*domain.Transacao, error) {
	query := bson.M{}
	if filter.EmpresaID != "" {
		query["empresa_id"] = filter.EmpresaID
	}
	if filter.Tipo != "" {
		query["tipo"] = filter.Tipo
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "data", Value: -1}})
	cur, err := r.coll(ctx).Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list transacoes: %w", err)
	}
	defer cur.Close(ctx)

	transacoes := make([]*domain.Transacao, 0)
	for cur.Next(ctx) {
		var doc transacaoDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode transacao: %w", err)
		}
		transacoes = append(transacoes, transacaoFromDoc(&doc))
	}
	return transacoes, cur.Err()
}

func (r *TransacaoRepositoryMongo) Update(ctx context.Context, t *domain.Transacao) error {
	oid, err := primitive.ObjectIDFromHex(t.ID)
	if err != nil {
		return domain.ErrTransacaoNotFound
	}

	doc := transacaoToDoc(t)
	update := bson.M{"$set": bson.M{
		"empresa_id":      doc.EmpresaID,
		"tipo":            doc.Tipo,
		"status":          doc.Status,
		"nf":              doc.NF,
		"descricao":       doc.Descricao,
		"valor":           doc.Valor,
		"data_entrada":    doc.DataEntrada,
		"data_saida":      doc.DataSaida,
		"tipo_material":   doc.TipoMaterial,
		"destino_entrada": doc.DestinoEntrada,
		"emenda_origem":   doc.EmendaOrigem,
	}}

	res, err := r.coll(ctx).UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update transacao: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTransacaoNotFound
	}
	return nil
}

func (r *TransacaoRepositoryMongo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTransacaoNotFound
	}

	res, err := r.coll(ctx).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete transacao: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTransacaoNotFound
	}
	return nil
}

func transacaoToDoc(t *domain.Transacao) transacaoDoc {
	return transacaoDoc{
		EmpresaID:      t.EmpresaID,
		Tipo:           string(t.Tipo),
		Status:         string(t.Status),
		NF:             t.NF,
		Descricao:      t.Descricao,
		Valor:          t.Valor,
		Data:           t.Data,
		DataEntrada:    t.DataEntrada,
		DataSaida:      t.DataSaida,
		TipoMaterial:   string(t.TipoMaterial),
		DestinoEntrada: string(t.DestinoEntrada),
		EmendaOrigem:   t.EmendaOrigem,
	}
}

func transacaoFromDoc(doc *transacaoDoc) *domain.Transacao {
	return &domain.Transacao{
		ID:             doc.ID.Hex(),
		EmpresaID:      doc.EmpresaID,
		Tipo:           domain.TransacaoTipo(doc.Tipo),
		Status:         domain.TransacaoStatus(doc.Status),
		NF:             doc.NF,
		Descricao:      doc.Descricao,
		Valor:          doc.Valor,
		Data:           doc.Data.UTC(),
		DataEntrada:    doc.DataEntrada.UTC(),
		DataSaida:      utcPtr(doc.DataSaida),
		TipoMaterial:   domain.TipoMaterial(doc.TipoMaterial),
		DestinoEntrada: domain.DestinoEntrada(doc.DestinoEntrada),
		EmendaOrigem:   doc.EmendaOrigem,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
