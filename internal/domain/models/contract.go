package models

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Artifact is a compiled contract as produced by the build pipeline
type Artifact struct {
	ContractName string
	SourceName   string // e.g. contracts/ReferralRegistry.sol
	ABI          abi.ABI
	Bytecode     []byte
	Path         string // artifact file
	DebugPath    string // companion .dbg.json, if any
}

// FullyQualifiedName returns "source:Name"
func (a *Artifact) FullyQualifiedName() string {
	return a.SourceName + ":" + a.ContractName
}

// SourceBundle is what an explorer needs to rebuild the contract
type SourceBundle struct {
	FullyQualifiedName string
	CompilerVersion    string // solc long version, e.g. 0.8.10+commit.fc410830
	StandardJSONInput  []byte
}
