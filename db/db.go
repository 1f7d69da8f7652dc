package db

import (
	"context"
	"log"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection         *mongo.Collection
	ShopsCollection        *mongo.Collection
	ShopProductsCollection *mongo.Collection
	ProductsCollection     *mongo.Collection
	OrdersCollection       *mongo.Collection
	ProduceCollection      *mongo.Collection
	BulkOrdersCollection   *mongo.Collection
	Client                 *mongo.Client
)

// Initialize MongoDB connection
func init() {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "mandidb"
	}

	UserCollection = Client.Database(dbName).Collection("users")
	ShopsCollection = Client.Database(dbName).Collection("shops")
	ShopProductsCollection = Client.Database(dbName).Collection("shopproducts")
	ProductsCollection = Client.Database(dbName).Collection("products")
	OrdersCollection = Client.Database(dbName).Collection("orders")
	ProduceCollection = Client.Database(dbName).Collection("produce")
	BulkOrdersCollection = Client.Database(dbName).Collection("bulkorders")
}
