// Generates StormEvents.parquet and StormEvents.csv fixtures:
//
//	go run testdata/generate.go
package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"
)

type StormEvent struct {
	StartTime      time.Time `parquet:"StartTime,timestamp(millisecond)"`
	State          string    `parquet:"State"`
	EventType      string    `parquet:"EventType"`
	DamageProperty *int32    `parquet:"DamageProperty,optional"`
}

func damage(n int32) *int32 { return &n }

func main() {
	events := []StormEvent{
		{StartTime: time.Date(2025, 8, 23, 6, 20, 0, 0, time.UTC), State: "FLORIDA", EventType: "Flood", DamageProperty: damage(1200)},
		{StartTime: time.Date(2025, 8, 24, 10, 0, 0, 0, time.UTC), State: "TEXAS", EventType: "Hail"},
		{StartTime: time.Date(2025, 8, 25, 12, 30, 0, 0, time.UTC), State: "FLORIDA", EventType: "Tornado", DamageProperty: damage(350000)},
		{StartTime: time.Date(2025, 8, 27, 18, 5, 0, 0, time.UTC), State: "OHIO", EventType: "Thunderstorm Wind", DamageProperty: damage(15000)},
		{StartTime: time.Date(2025, 8, 28, 9, 49, 0, 0, time.UTC), State: "FLORIDA", EventType: "Heavy Rain", DamageProperty: damage(0)},
	}

	file, err := os.Create("StormEvents.parquet")
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[StormEvent](file)
	if _, err := writer.Write(events); err != nil {
		log.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal(err)
	}

	csvFile, err := os.Create("StormEvents.csv")
	if err != nil {
		log.Fatal(err)
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	_ = w.Write([]string{"StartTime", "State", "EventType", "DamageProperty"})
	for _, e := range events {
		dmg := ""
		if e.DamageProperty != nil {
			dmg = strconv.Itoa(int(*e.DamageProperty))
		}
		_ = w.Write([]string{e.StartTime.Format("2006-01-02T15:04:05"), e.State, e.EventType, dmg})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatal(err)
	}

	log.Printf("Generated StormEvents.parquet and StormEvents.csv with %d events", len(events))
}
