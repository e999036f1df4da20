// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
	"github.com/redis/go-redis/v9"
	"github.com/tliron/commonlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"xplain/internal/record"
	"xplain/internal/render"
	"xplain/internal/simplify"
	"xplain/internal/store"
	"xplain/internal/xerrors"
	"xplain/script"
)

var log = commonlog.GetLogger("xplain.cli")

func main() {
	configPath := flag.String("config", "", "yaml file of adapter defaults (flags still override it)")
	storeFlag := flag.String("store", "", "persistence adapter: memory|bolt|redis|mongo")
	boltPath := flag.String("bolt-path", "", "bolt file path (store=bolt)")
	redisAddr := flag.String("redis-addr", "", "redis address (store=redis)")
	mongoURI := flag.String("mongo-uri", "", "mongo connection string (store=mongo)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: xplain-cli [-config xplain.yaml] [-store memory|bolt|redis|mongo] <script.xpl>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		color.Red("failed to load config %s: %s", *configPath, err)
		os.Exit(1)
	}
	storeKind := firstNonEmpty(*storeFlag, cfg.Store, "memory")
	boltPath2 := firstNonEmpty(*boltPath, cfg.BoltPath, "xplain.bolt")
	redisAddr2 := firstNonEmpty(*redisAddr, cfg.RedisAddr, "localhost:6379")
	mongoURI2 := firstNonEmpty(*mongoURI, cfg.MongoURI, "mongodb://localhost:27017")

	commonlog.Configure(1, nil)

	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read file: %s", err)
		os.Exit(1)
	}

	n, err := script.Compile(path, string(source))
	if err != nil {
		reportParseError(path, string(source), err)
		os.Exit(1)
	}

	fmt.Println("raw:       ", render.Render(n))
	fmt.Println("simplified:", render.Render(simplify.Simplify(n)))

	adapter, closeFn, err := buildAdapter(storeKind, boltPath2, redisAddr2, mongoURI2)
	if err != nil {
		color.Red("failed to build %s adapter: %s", storeKind, err)
		os.Exit(1)
	}
	defer closeFn()

	ctx := context.Background()
	records := record.Flatten(n)
	if err := adapter.Write(ctx, records); err != nil {
		log.Errorf("write failed: %s", err)
		color.Red("write failed: %s", err)
		os.Exit(1)
	}

	readBack, err := adapter.ReadTree(ctx, n.ID())
	if err != nil {
		log.Errorf("read_tree failed: %s", err)
		color.Red("read_tree failed: %s", err)
		os.Exit(1)
	}

	rebuilt, err := record.Reconstruct(readBack)
	if err != nil {
		log.Errorf("reconstruct failed: %s", err)
		color.Red("reconstruct failed: %s", err)
		os.Exit(1)
	}

	before := render.Render(n)
	after := render.Render(rebuilt)
	if before != after {
		color.Red("round trip mismatch:\n  before: %s\n  after:  %s", before, after)
		os.Exit(1)
	}

	color.Green("✅ round trip through %s store verified", storeKind)
}

// firstNonEmpty returns the first non-empty string in order: an
// explicit flag wins over a config file value, which wins over the
// built-in default.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func buildAdapter(kind, boltPath, redisAddr, mongoURI string) (store.Adapter, func(), error) {
	switch kind {
	case "memory":
		return store.NewMemory(), func() {}, nil
	case "bolt":
		b, err := store.OpenBolt(boltPath)
		if err != nil {
			return nil, nil, err
		}
		return b, func() { _ = b.Close() }, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		return store.NewRedis(client), func() { _ = client.Close() }, nil
	case "mongo":
		ctx := context.Background()
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
		if err != nil {
			return nil, nil, err
		}
		collection := client.Database("xplain").Collection("evaluated_expressions")
		return store.NewMongo(collection), func() { _ = client.Disconnect(ctx) }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", kind)
	}
}

// reportParseError renders a xplainscript syntax error with the same
// caret-styled diagnostics participle errors get throughout this
// module.
func reportParseError(path, src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("unexpected error: %s", err)
		return
	}
	pos := pe.Position()
	reporter := xerrors.NewReporter(path, src)
	fmt.Print(reporter.FormatParseError(xerrors.Position{
		Filename: pos.Filename,
		Line:     pos.Line,
		Column:   pos.Column,
	}, pe.Message()))
}
