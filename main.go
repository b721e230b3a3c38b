package main

import (
	"context"
	"log"
	"photomind/captions"
	"photomind/catalog"
	"photomind/config"
	"photomind/db"
	"photomind/graph"
	"photomind/handlers"
	"photomind/intake"
	"photomind/models"
	"photomind/search"
	"photomind/storage"
	"strings"
	"time"

	"github.com/gin-gonic/autotls"
)

func main() {
	store, err := openCatalog()
	if err != nil {
		log.Fatalf("Cannot open catalog: %v", err)
	}
	files := storage.Init()

	live := handlers.NewLiveFeed()
	hooks := []catalog.InsertHook{live.Broadcast}
	if config.GRAPH_UPDATES {
		updater := graph.NewUpdater(config.SIMILARITY_API_URL, config.GRAPH_QUEUE_SIZE, time.Duration(config.SIMILARITY_TIMEOUT)*time.Second)
		updater.Start(context.Background())
		hooks = append(hooks, updater.Enqueue)
	}
	store = catalog.WithHooks(store, hooks...)

	similarity := search.NewSimilarityClient(config.SIMILARITY_API_URL, time.Duration(config.SIMILARITY_TIMEOUT)*time.Second)
	photos := &handlers.Photos{
		Catalog: store,
		Search:  search.NewReconciler(store, similarity),
		Intake:  intake.New(store, files, captions.FromConfig()),
		Storage: files,
	}
	router := setupRouter(photos, live)

	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}

// openCatalog uses the SQL database when one is configured and keeps photos in memory otherwise
func openCatalog() (catalog.Store, error) {
	ids := catalog.NewSequence()
	var seed []models.Photo
	if config.SEED_PHOTOS {
		seed = catalog.DemoPhotos()
	}
	ok, err := db.Init()
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Printf("Using in-memory catalog, photos are lost on restart")
		return catalog.NewMemoryStore(ids, seed...), nil
	}
	store, err := catalog.NewSQLStore(db.Instance, ids)
	if err != nil {
		return nil, err
	}
	if err = store.SeedIfEmpty(seed...); err != nil {
		return nil, err
	}
	return store, nil
}
