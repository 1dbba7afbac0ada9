package explorer

import "encoding/json"

// apiResponse is the envelope of every account module response.
// Result is an array on success and a message string on most failures.
type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// txRecord is the union of the txlist and txlistinternal record fields.
type txRecord struct {
	BlockNumber     string `json:"blockNumber"`
	TimeStamp       string `json:"timeStamp"`
	Hash            string `json:"hash"`
	From            string `json:"from"`
	To              string `json:"to"`
	Value           string `json:"value"`
	Input           string `json:"input"`
	MethodID        string `json:"methodId"`
	FunctionName    string `json:"functionName"`
	ContractAddress string `json:"contractAddress"`
	IsError         string `json:"isError"`
}
