package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"goita/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrRoundNotFound is returned by LoadRound for unknown round ids.
var ErrRoundNotFound = errors.New("round not found")

// roundDoc is the stored form of a finished round, keyed by round id.
type roundDoc struct {
	ID          string    `bson:"_id"`
	Dealer      int       `bson:"dealer"`
	Winner      int       `bson:"winner"`
	Team        int       `bson:"team"`
	WinningTile int       `bson:"winning_tile"`
	Points      int       `bson:"points"`
	Double      bool      `bson:"double"`
	PairedKings bool      `bson:"paired_kings"`
	TeamScores  []int     `bson:"team_scores"`
	Concealed   [][]int   `bson:"concealed"`
	Moves       int       `bson:"moves"`
	StartTime   time.Time `bson:"start_time"`
	EndTime     time.Time `bson:"end_time"`
	Duration    int64     `bson:"duration"` // seconds
}

// Archive implements ports.RoundArchive on a MongoDB collection.
type Archive struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ ports.RoundArchive = (*Archive)(nil)

// New wraps an existing collection.
func New(coll *mongo.Collection) *Archive {
	return &Archive{coll: coll}
}

// Connect dials url, checks the primary is reachable and returns an archive
// over db.collection that owns the client.
func Connect(ctx context.Context, url, db, collection string) (*Archive, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}
	a := New(client.Database(db).Collection(collection))
	a.client = client
	return a, nil
}

// SaveRound inserts the summary of a finished round.
func (a *Archive) SaveRound(ctx context.Context, s ports.RoundSummary) error {
	if _, err := a.coll.InsertOne(ctx, summaryToDoc(s)); err != nil {
		return fmt.Errorf("save round %s: %w", s.RoundID, err)
	}
	return nil
}

// LoadRound fetches a stored round by id.
func (a *Archive) LoadRound(ctx context.Context, roundID string) (ports.RoundSummary, error) {
	var doc roundDoc
	err := a.coll.FindOne(ctx, bson.M{"_id": roundID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ports.RoundSummary{}, fmt.Errorf("%w: %s", ErrRoundNotFound, roundID)
		}
		return ports.RoundSummary{}, fmt.Errorf("load round %s: %w", roundID, err)
	}
	return docToSummary(doc), nil
}

// Close disconnects an owned client.
func (a *Archive) Close(ctx context.Context) error {
	if a.client == nil {
		return nil
	}
	return a.client.Disconnect(ctx)
}

func summaryToDoc(s ports.RoundSummary) roundDoc {
	doc := roundDoc{
		ID:          s.RoundID,
		Dealer:      s.Dealer,
		Winner:      s.Winner,
		Team:        s.Team,
		WinningTile: s.WinningTile,
		Points:      s.Points,
		Double:      s.Double,
		PairedKings: s.PairedKings,
		TeamScores:  []int{s.TeamScores[0], s.TeamScores[1]},
		Concealed:   make([][]int, len(s.Concealed)),
		Moves:       s.Moves,
		StartTime:   s.StartedAt,
		EndTime:     s.EndedAt,
		Duration:    int64(s.EndedAt.Sub(s.StartedAt) / time.Second),
	}
	for i, tiles := range s.Concealed {
		doc.Concealed[i] = append([]int{}, tiles...)
	}
	return doc
}

func docToSummary(doc roundDoc) ports.RoundSummary {
	s := ports.RoundSummary{
		RoundID:     doc.ID,
		Dealer:      doc.Dealer,
		Winner:      doc.Winner,
		Team:        doc.Team,
		WinningTile: doc.WinningTile,
		Points:      doc.Points,
		Double:      doc.Double,
		PairedKings: doc.PairedKings,
		Moves:       doc.Moves,
		StartedAt:   doc.StartTime,
		EndedAt:     doc.EndTime,
	}
	copy(s.TeamScores[:], doc.TeamScores)
	for i := 0; i < len(s.Concealed) && i < len(doc.Concealed); i++ {
		if len(doc.Concealed[i]) > 0 {
			s.Concealed[i] = append([]int(nil), doc.Concealed[i]...)
		}
	}
	return s
}
