package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/google/uuid"
	stan "github.com/nats-io/stan.go"
)

// Operator helper: read one order JSON from stdin and publish it to the
// orders subject. Used to replay or hand-feed orders into the service.
func main() {
	clusterID := getenv("STAN_CLUSTER_ID", "akura-cluster")
	clientID := getenv("STAN_PUB_ID", "akura-publisher-"+uuid.NewString()[:8])
	natsURL := getenv("NATS_URL", "nats://localhost:4222")
	subject := getenv("STAN_SUBJECT", "orders")

	sc, err := stan.Connect(clusterID, clientID, stan.NatsURL(natsURL))
	if err != nil {
		log.Fatalf("stan connect: %v", err)
	}
	defer sc.Close()

	var payload map[string]any
	dec := json.NewDecoder(os.Stdin)
	if err := dec.Decode(&payload); err != nil {
		log.Fatalf("read json from stdin: %v", err)
	}
	if id, _ := payload["orderId"].(string); id == "" {
		log.Fatalf("payload has no orderId; the service would reject it")
	}
	b, err := json.Marshal(payload)
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	if err := sc.Publish(subject, b); err != nil {
		log.Fatalf("publish: %v", err)
	}
	log.Printf("published %d bytes to %s", len(b), subject)
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
