package live

// ClientScript is the thin browser client. It mirrors snapshot and patch
// frames into the page and sends clicks on bound elements back as events.
const ClientScript = `
(function() {
    'use strict';

    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;
    var ws = null;

    function find(hid) {
        if (!hid) return null;
        return document.querySelector('[data-hid="' + hid + '"]');
    }

    function parse(html) {
        var tmpl = document.createElement('template');
        tmpl.innerHTML = html;
        return tmpl.content.firstElementChild;
    }

    function applySnapshot(msg) {
        document.head.querySelectorAll('[data-hid]').forEach(function(el) {
            el.remove();
        });
        document.head.setAttribute('data-hid', msg.headHid);
        document.head.insertAdjacentHTML('beforeend', msg.head || '');
        document.body.setAttribute('data-hid', msg.bodyHid);
        document.body.innerHTML = msg.body || '';
    }

    function applyPatch(msg) {
        var el;
        switch (msg.op) {
            case 'InsertNode':
                var parent = find(msg.parent);
                var node = parse(msg.html || '');
                if (!parent || !node) return;
                parent.insertBefore(node, parent.children[msg.index || 0] || null);
                break;
            case 'RemoveNode':
                el = find(msg.hid);
                if (el) el.remove();
                break;
            case 'SetStyle':
                el = find(msg.hid);
                if (el) el.style.setProperty(msg.key, msg.value || '');
                break;
            case 'AddClass':
                el = find(msg.hid);
                if (el) el.classList.add(msg.value);
                break;
            case 'SetAttr':
                el = find(msg.hid);
                if (el) el.setAttribute(msg.key, msg.value || '');
                break;
            case 'RemoveAttr':
                el = find(msg.hid);
                if (el) el.removeAttribute(msg.key);
                break;
            case 'SetText':
                el = find(msg.hid);
                if (el) el.textContent = msg.value || '';
                break;
        }
    }

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + '/ws');

        ws.onopen = function() {
            console.log('[vango-toast] preview connected');
            reconnectDelay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            if (msg.type === 'snapshot') {
                applySnapshot(msg);
            } else if (msg.type === 'patch') {
                applyPatch(msg);
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    document.addEventListener('click', function(e) {
        var el = e.target.closest('[data-on-click]');
        if (!el || !ws || ws.readyState !== WebSocket.OPEN) return;
        e.preventDefault();
        ws.send(JSON.stringify({type: 'event', hid: el.getAttribute('data-hid'), event: 'click'}));
    });

    if (document.readyState === 'loading') {
        document.addEventListener('DOMContentLoaded', connect);
    } else {
        connect();
    }
})();
`
