package config

import (
	"os"
	"time"

	client "github.com/influxdata/influxdb1-client/v2"
)

var InfluxDB *InfluxClient

type InfluxClient struct {
	client   client.Client
	database string
}

func NewInfluxDB() error {
	c, err := NewInfluxClient(os.Getenv("INFLUXDB_URL"), Getenv("INFLUXDB_DATABASE", "execsim"))
	if err != nil {
		return err
	}

	InfluxDB = c

	return nil
}

// NewInfluxClient connects to the InfluxDB 1.x HTTP endpoint at addr.
func NewInfluxClient(addr, database string) (*InfluxClient, error) {
	c, err := client.NewHTTPClient(client.HTTPConfig{
		Addr:    addr,
		Timeout: 5 * time.Second,
	})

	if err != nil {
		return nil, err
	}

	return &InfluxClient{
		client:   c,
		database: database,
	}, nil
}

func (c *InfluxClient) NewBatchPoints() (client.BatchPoints, error) {
	return client.NewBatchPoints(client.BatchPointsConfig{
		Database:  c.database,
		Precision: "ns",
	})
}

func (c *InfluxClient) Write(bp client.BatchPoints) error {
	return c.client.Write(bp)
}

func (c *InfluxClient) Close() error {
	return c.client.Close()
}
