package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/Patrick0307/404-ZOO/internal/game"
)

var _ Backend = (*EthereumBackend)(nil)

// EthereumBackend settles the token and mint legs on an Ethereum-style
// chain and reads block numbers for draw entropy. The operator key signs
// on behalf of the game treasury; player identities map onto addresses by
// taking their first 20 bytes.
type EthereumBackend struct {
	client   *ethclient.Client
	key      *ecdsa.PrivateKey
	operator common.Address
	chainID  *big.Int
	registry common.Address
}

// DialEthereum connects to rpcURL and prepares the operator signer.
// registry is the contract (or sink address) mint records are sent to.
func DialEthereum(ctx context.Context, rpcURL, operatorKeyHex, registryHex string) (*EthereumBackend, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial eth rpc: %w", err)
	}

	key, err := crypto.HexToECDSA(operatorKeyHex)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("parse operator key: %w", err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("read chain id: %w", err)
	}

	return &EthereumBackend{
		client:   client,
		key:      key,
		operator: crypto.PubkeyToAddress(key.PublicKey),
		chainID:  chainID,
		registry: common.HexToAddress(registryHex),
	}, nil
}

func (b *EthereumBackend) Close() {
	b.client.Close()
}

func (b *EthereumBackend) Height(ctx context.Context) (uint64, error) {
	n, err := b.client.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("read block number: %w", err)
	}

	return n, nil
}

func (b *EthereumBackend) Transfer(ctx context.Context, from, to game.Identity, amount int64) error {
	return b.send(ctx, addressOf(to), big.NewInt(amount), nil)
}

func (b *EthereumBackend) Mint(ctx context.Context, owner game.Identity, ref game.CardRef) error {
	data := make([]byte, 0, len(owner)+len(ref))
	data = append(data, owner[:]...)
	data = append(data, ref[:]...)

	return b.send(ctx, b.registry, big.NewInt(0), data)
}

func (b *EthereumBackend) send(ctx context.Context, to common.Address, value *big.Int, data []byte) error {
	nonce, err := b.client.PendingNonceAt(ctx, b.operator)
	if err != nil {
		return fmt.Errorf("pending nonce: %w", err)
	}

	gasPrice, err := b.client.SuggestGasPrice(ctx)
	if err != nil {
		return fmt.Errorf("suggest gas price: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      90_000,
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(b.chainID), b.key)
	if err != nil {
		return fmt.Errorf("sign tx: %w", err)
	}

	err = b.client.SendTransaction(ctx, signed)
	if err != nil {
		return fmt.Errorf("send tx: %w", err)
	}

	return nil
}

// addressOf truncates a 32-byte identity into a 20-byte address.
func addressOf(id game.Identity) common.Address {
	return common.BytesToAddress(id[:20])
}
