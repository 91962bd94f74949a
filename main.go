package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"geofacts/api"
	"geofacts/config"
	"geofacts/kafka"
	"geofacts/processor"
	"geofacts/script"
)

func main() {
	serveMode := flag.Bool("serve", false, "Run the HTTP API server")
	workerMode := flag.Bool("worker", false, "Run as a Kafka render worker")
	presetName := flag.String("preset", script.DefaultPreset, "Built-in script preset to render")
	jobFile := flag.String("job", "", "Render a job described by a JSON file instead of a preset")
	flag.Parse()

	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()
	cfg := config.Load()

	log.Println("🎬 geofacts - map fact video generator")

	proc, err := processor.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize processor: %v", err)
	}

	if *serveMode {
		log.Printf("🌐 Running in API mode on %s", cfg.Port)
		log.Println("📌 Endpoints:")
		log.Println("   POST /api/render   - Start a render job from JSON")
		log.Println("   GET  /api/presets  - List built-in scripts")
		log.Println("   GET  /api/health   - Health check")

		r := api.NewRouter(proc)
		if err := r.Run(cfg.Port); err != nil {
			log.Fatalf("❌ Server failed: %v", err)
		}
		return
	}

	if *workerMode {
		log.Println("📨 Running in Kafka worker mode")
		log.Printf("🔗 Brokers: %v, topic: %s, group: %s", cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID)

		err := kafka.RunWithGracefulShutdown(kafka.Config{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
			GroupID: cfg.KafkaGroupID,
			Handler: func(ctx context.Context, job script.Job) error {
				_, err := proc.ProcessJob(ctx, job)
				return err
			},
		})
		if err != nil {
			log.Fatalf("❌ Kafka worker failed: %v", err)
		}
		return
	}

	// One-shot CLI mode: render a preset or a job file.
	var job script.Job
	if *jobFile != "" {
		job, err = script.LoadFile(*jobFile)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
	} else {
		var ok bool
		job, ok = script.Preset(*presetName)
		if !ok {
			log.Fatalf("❌ Unknown preset %q (available: %v)", *presetName, script.PresetNames())
		}
	}

	outputPath, err := proc.ProcessJob(context.Background(), job)
	if err != nil {
		log.Fatalf("❌ Render failed: %v", err)
	}
	log.Printf("BOOM! Video ready: %s", outputPath)
}
